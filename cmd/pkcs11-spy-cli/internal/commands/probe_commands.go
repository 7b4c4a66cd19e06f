package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"

	"github.com/spf13/cobra"
)

type probeReport struct {
	Module  string        `json:"module"`
	RunID   string        `json:"run_id"`
	Library libraryReport `json:"library"`
	Slots   []slotReport  `json:"slots"`
}

type libraryReport struct {
	CryptokiVersion string `json:"cryptoki_version"`
	Manufacturer    string `json:"manufacturer"`
	Description     string `json:"description"`
	Version         string `json:"version"`
}

type slotReport struct {
	ID           uint              `json:"id"`
	Description  string            `json:"description"`
	Manufacturer string            `json:"manufacturer"`
	Flags        string            `json:"flags"`
	Token        *tokenReport      `json:"token,omitempty"`
	Mechanisms   []mechanismReport `json:"mechanisms,omitempty"`
	Errors       []string          `json:"errors,omitempty"`
}

type tokenReport struct {
	Label        string `json:"label"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Flags        string `json:"flags"`
}

type mechanismReport struct {
	Name       string `json:"name"`
	MinKeySize uint   `json:"min_key_size"`
	MaxKeySize uint   `json:"max_key_size"`
	Flags      string `json:"flags"`
}

// ProbeCmd walks a module through the informational calls via the spy, so the trace
// shows how the module answers a typical client
func (h *SpyCommandsHandler) ProbeCmd(cmd *cobra.Command, _ []string) error {
	allSlots, err := cmd.Flags().GetBool("all-slots")
	if err != nil {
		return fmt.Errorf("invalid all-slots flag: %w", err)
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("invalid json flag: %w", err)
	}

	session, err := h.newSpy(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			h.logger.Warn("failed to release spy: ", closeErr)
		}
	}()

	report, err := probeModule(session.spy, !allSlots)
	if err != nil {
		return err
	}
	report.Module = h.config.Spy.Module
	report.RunID = session.spy.RunID()

	if asJSON {
		reportJSON, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal probe report to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(reportJSON))
		return nil
	}

	writeProbeReport(cmd.OutOrStdout(), report)
	return nil
}

// probeModule runs Initialize, GetInfo, the two-call GetSlotList, slot and token info,
// the two-call GetMechanismList with mechanism info, and Finalize. Per-slot failures are
// reported and do not stop the probe.
func probeModule(m cryptoki.Module, tokenPresent bool) (_ *probeReport, err error) {
	if err := m.Initialize(&cryptoki.InitializeArgs{Flags: cryptoki.OSLockingOK}); err != nil {
		return nil, callError("C_Initialize", err)
	}
	defer func() {
		if finalizeErr := m.Finalize(); finalizeErr != nil {
			err = errors.Join(err, callError("C_Finalize", finalizeErr))
		}
	}()

	info, err := m.GetInfo()
	if err != nil {
		return nil, callError("C_GetInfo", err)
	}

	report := &probeReport{
		Library: libraryReport{
			CryptokiVersion: versionString(info.CryptokiVersion),
			Manufacturer:    trimPadded(info.ManufacturerID[:]),
			Description:     trimPadded(info.LibraryDescription[:]),
			Version:         versionString(info.LibraryVersion),
		},
	}

	n, err := m.GetSlotList(tokenPresent, nil)
	if err != nil {
		return nil, callError("C_GetSlotList", err)
	}
	slots := make([]cryptoki.SlotID, n)
	if n > 0 {
		if n, err = m.GetSlotList(tokenPresent, slots); err != nil {
			return nil, callError("C_GetSlotList", err)
		}
		slots = slots[:n]
	}

	for _, id := range slots {
		report.Slots = append(report.Slots, probeSlot(m, id))
	}
	return report, nil
}

func probeSlot(m cryptoki.Module, id cryptoki.SlotID) slotReport {
	slot := slotReport{ID: uint(id)}
	fail := func(op string, err error) {
		slot.Errors = append(slot.Errors, op+": "+statusName(err))
	}

	slotInfo, err := m.GetSlotInfo(id)
	if err != nil {
		fail("C_GetSlotInfo", err)
		return slot
	}
	slot.Description = trimPadded(slotInfo.SlotDescription[:])
	slot.Manufacturer = trimPadded(slotInfo.ManufacturerID[:])
	slot.Flags = fmt.Sprintf("0x%X", uint(slotInfo.Flags))

	if tokenInfo, err := m.GetTokenInfo(id); err != nil {
		fail("C_GetTokenInfo", err)
	} else {
		slot.Token = &tokenReport{
			Label:        trimPadded(tokenInfo.Label[:]),
			Manufacturer: trimPadded(tokenInfo.ManufacturerID[:]),
			Model:        trimPadded(tokenInfo.Model[:]),
			SerialNumber: trimPadded(tokenInfo.SerialNumber[:]),
			Flags:        fmt.Sprintf("0x%X", uint(tokenInfo.Flags)),
		}
	}

	n, err := m.GetMechanismList(id, nil)
	if err != nil {
		fail("C_GetMechanismList", err)
		return slot
	}
	if n == 0 {
		return slot
	}
	mechanisms := make([]cryptoki.MechanismType, n)
	if n, err = m.GetMechanismList(id, mechanisms); err != nil {
		fail("C_GetMechanismList", err)
		return slot
	}

	for _, mech := range mechanisms[:n] {
		entry := mechanismReport{Name: enums.Lookup(enums.Mechanism, uint(mech))}
		if mechInfo, err := m.GetMechanismInfo(id, mech); err != nil {
			fail("C_GetMechanismInfo("+entry.Name+")", err)
		} else {
			entry.MinKeySize = mechInfo.MinKeySize
			entry.MaxKeySize = mechInfo.MaxKeySize
			entry.Flags = fmt.Sprintf("0x%X", uint(mechInfo.Flags))
		}
		slot.Mechanisms = append(slot.Mechanisms, entry)
	}
	return slot
}

func writeProbeReport(out io.Writer, r *probeReport) {
	fmt.Fprintf(out, "Module:      %s\n", r.Module)
	fmt.Fprintf(out, "Run:         %s\n", r.RunID)
	fmt.Fprintf(out, "Cryptoki:    %s\n", r.Library.CryptokiVersion)
	fmt.Fprintf(out, "Library:     %s %s (%s)\n", r.Library.Description, r.Library.Version, r.Library.Manufacturer)
	fmt.Fprintf(out, "Slots:       %d\n", len(r.Slots))

	for _, s := range r.Slots {
		fmt.Fprintf(out, "\nSlot %d: %s (%s) flags=%s\n", s.ID, s.Description, s.Manufacturer, s.Flags)
		if s.Token != nil {
			fmt.Fprintf(out, "  Token: %q %s %s serial=%s flags=%s\n",
				s.Token.Label, s.Token.Manufacturer, s.Token.Model, s.Token.SerialNumber, s.Token.Flags)
		}
		for _, m := range s.Mechanisms {
			fmt.Fprintf(out, "  %-32s keys %d..%d flags=%s\n", m.Name, m.MinKeySize, m.MaxKeySize, m.Flags)
		}
		for _, e := range s.Errors {
			fmt.Fprintf(out, "  error: %s\n", e)
		}
	}
}

func callError(op string, err error) error {
	return fmt.Errorf("%s returned %s: %w", op, statusName(err), err)
}

func statusName(err error) string {
	return enums.Lookup(enums.Status, uint(cryptoki.StatusOf(err)))
}

func versionString(v cryptoki.Version) string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func trimPadded(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}

func initProbeCommands(rootCmd *cobra.Command, handler *SpyCommandsHandler) {
	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Trace the informational calls of a PKCS#11 module",
		Long: `probe loads the module through the spy and calls C_Initialize, C_GetInfo,
C_GetSlotList, C_GetSlotInfo, C_GetTokenInfo, C_GetMechanismList, C_GetMechanismInfo
and C_Finalize. The trace goes to --output, the summary to stdout.`,
		RunE: handler.ProbeCmd,
	}
	probeCmd.Flags().Bool("all-slots", false, "Include slots without a token")
	probeCmd.Flags().Bool("json", false, "Print the summary as JSON")
	rootCmd.AddCommand(probeCmd)
}
