package commands

import (
	"fmt"
	"strings"

	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"

	"github.com/spf13/cobra"
)

// LookupCmd translates between a code and its symbolic name. Without a value it lists
// the whole domain.
func (h *SpyCommandsHandler) LookupCmd(cmd *cobra.Command, args []string) error {
	domain, err := enums.ParseDomain(args[0])
	if err != nil {
		return err
	}

	registry := enums.Default()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		for _, e := range registry.Entries(domain) {
			fmt.Fprintf(out, "0x%08X  %s\n", e.Code, e.Name)
		}
		return nil
	}

	for _, value := range args[1:] {
		code, err := registry.Code(domain, value)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "0x%08X  %s\n", code, registry.Lookup(domain, code))
	}
	return nil
}

func domainNames() string {
	names := make([]string, 0, len(enums.Domains()))
	for _, d := range enums.Domains() {
		names = append(names, d.String())
	}
	return strings.Join(names, ", ")
}

func initLookupCommands(rootCmd *cobra.Command, handler *SpyCommandsHandler) {
	lookupCmd := &cobra.Command{
		Use:   "lookup <domain> [code|name...]",
		Short: "Translate PKCS#11 codes to symbolic names and back",
		Long: "Translate PKCS#11 codes to symbolic names and back.\n" +
			"Domains: " + domainNames() + " (or a prefix such as CKR, CKM).\n" +
			"Codes accept decimal, 0x hex or a name with or without its prefix.",
		Args: cobra.MinimumNArgs(1),
		RunE: handler.LookupCmd,
	}
	rootCmd.AddCommand(lookupCmd)
}
