package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/elmdrive/elmdrive/worker"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker [entry]",
	Short: "Run a compiled module headlessly and bridge its ports to stdio",
	Long: `Compile an entry source and run the named module in worker mode.

Every outbound port is subscribed and its values are printed to stdout
as JSON lines of the form {"port":NAME,"value":VALUE}. Lines of the
same shape read from stdin are delivered to the named inbound port.
The worker stops at stdin EOF.`,
	Args: cobra.ExactArgs(1),
	Run:  runWorker,
}

func init() {
	workerCmd.Flags().StringP("module", "m", "Main", "Dot-delimited module name")
	workerCmd.Flags().String("flags", "", "Initialization flags as JSON")
	workerCmd.Flags().String("base", ".", "Base directory for the compile")
	rootCmd.AddCommand(workerCmd)
}

type portMessage struct {
	Port  string          `json:"port"`
	Value json.RawMessage `json:"value"`
}

func runWorker(cmd *cobra.Command, args []string) {
	moduleName, _ := cmd.Flags().GetString("module")
	flagsJSON, _ := cmd.Flags().GetString("flags")
	baseDir, _ := cmd.Flags().GetString("base")

	var flags any
	if flagsJSON != "" {
		if err := json.Unmarshal([]byte(flagsJSON), &flags); err != nil {
			fail("parse --flags: %v", err)
		}
	}

	c, closer, err := newCompiler(cmd)
	if err != nil {
		fail("%v", err)
	}
	defer closer()

	h, err := worker.StartWorker(context.Background(), c, baseDir, args[0], moduleName, flags)
	if err != nil {
		fail("%v", err)
	}
	defer h.Close()

	enc := json.NewEncoder(os.Stdout)
	inbound := make(map[string]worker.Port)
	for _, name := range h.PortNames() {
		port, err := h.Port(name)
		if err != nil {
			fail("%v", err)
		}
		name := name
		if err := port.Subscribe(func(v any) {
			data, err := json.Marshal(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: encode value from port %q: %v\n", name, err)
				return
			}
			enc.Encode(portMessage{Port: name, Value: data})
		}); err != nil {
			if !errors.Is(err, worker.ErrUnsupportedDirection) {
				fail("%v", err)
			}
			// Inbound-only; keep it for stdin delivery.
			inbound[name] = port
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg portMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parse input line: %v\n", err)
			continue
		}
		port, ok := inbound[msg.Port]
		if !ok {
			p, err := h.Port(msg.Port)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			inbound[msg.Port] = p
			port = p
		}
		var value any
		if len(msg.Value) > 0 {
			if err := json.Unmarshal(msg.Value, &value); err != nil {
				fmt.Fprintf(os.Stderr, "Error: parse value for port %q: %v\n", msg.Port, err)
				continue
			}
		}
		if err := port.Send(value); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fail("read stdin: %v", err)
	}
}
