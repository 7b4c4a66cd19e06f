package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"

	"github.com/spf13/cobra"
)

// ListOperationsCmd prints every intercepted operation in function-list order, or the
// parameters of the operations named as arguments
func (h *SpyCommandsHandler) ListOperationsCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, d := range operation.List() {
			fmt.Fprintf(out, "%2d  %s(%s)\n", int(d.ID), d.Name, paramNames(d.Params))
		}
		return nil
	}

	for _, name := range args {
		d, ok := operation.Describe(name)
		if !ok {
			return fmt.Errorf("unknown operation %q", name)
		}
		describeOperation(out, d)
	}
	return nil
}

func paramNames(params []operation.Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func describeOperation(out io.Writer, d operation.Descriptor) {
	fmt.Fprintf(out, "%s (slot %d)\n", d.Name, int(d.ID))
	for _, p := range d.Params {
		kind := p.Kind.String()
		if p.Enum != enums.None {
			kind += " " + p.Enum.Prefix() + "*"
		}
		fmt.Fprintf(out, "  %-6s %-22s %s\n", "["+p.Dir.String()+"]", p.Name, kind)
	}
}

func initOperationsCommands(rootCmd *cobra.Command, handler *SpyCommandsHandler) {
	operationsCmd := &cobra.Command{
		Use:   "operations [C_Name...]",
		Short: "List the intercepted PKCS#11 operations and their parameters",
		RunE:  handler.ListOperationsCmd,
	}
	rootCmd.AddCommand(operationsCmd)
}
