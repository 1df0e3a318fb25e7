// Command suprax16sim runs one of the embedded demo programs against the
// suprax16 simulator and prints its final architectural state. It is a
// diagnostics surface over the Host API (CpuState), not a file loader or
// assembler — those are explicit Non-goals of this project.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"suprax16"
	"suprax16/internal/demo"
)

var (
	cycles      uint32
	outOfOrder  bool
	robCapacity int
	program     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "suprax16sim",
		Short: "Cycle-level simulator for the suprax16 ISA",
		RunE:  runSim,
	}

	root.Flags().Uint32Var(&cycles, "cycles", 1000, "cycle budget to run")
	root.Flags().BoolVar(&outOfOrder, "ooo", false, "run under the out-of-order engine instead of in-order")
	root.Flags().IntVar(&robCapacity, "rob-capacity", 0, "reorder buffer capacity (0 selects the default)")
	root.Flags().StringVar(&program, "program", "arithmetic", "embedded demo program: arithmetic, memory, branch-loop")

	return root
}

func loadProgram(name string) ([]byte, error) {
	switch name {
	case "arithmetic":
		return demo.Arithmetic(), nil
	case "memory":
		return demo.MemoryRoundTrip(), nil
	case "branch-loop":
		return demo.BranchLoop(), nil
	default:
		return nil, fmt.Errorf("unknown demo program %q", name)
	}
}

func runSim(cmd *cobra.Command, args []string) error {
	img, err := loadProgram(program)
	if err != nil {
		return err
	}

	cpu := suprax.NewCpuState(robCapacity)
	cpu.Memory.LoadProgram(img, 0)

	if outOfOrder {
		if err := cpu.EnableOutOfOrder(); err != nil {
			return err
		}
	}

	executed := cpu.Run(cycles)
	if cpu.DecodeErr != nil {
		return cpu.DecodeErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ran %d cycles\n", executed)
	fmt.Fprintln(cmd.OutOrStdout(), cpu.Stats())
	for i := uint8(0); i < 8; i++ {
		fmt.Fprintf(cmd.OutOrStdout(), "r%d = %#06x\n", i, cpu.Regs.Read(i))
	}
	return nil
}
