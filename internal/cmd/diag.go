package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ghostkey/ghostkey/internal/storage"
)

// Diag measures card throughput and verifies data integrity.
type Diag struct {
	Card string `help:"Card mount directory" default:"/mnt/card" env:"GHOSTKEY_CARD" type:"path"`
}

func (d *Diag) Run(logger *slog.Logger) error {
	logger.Info("running card diagnostics", "card", d.Card)

	report, err := storage.Diagnose(d.Card)
	if err != nil {
		return err
	}

	logger.Info("card diagnostics",
		"readKBps", fmt.Sprintf("%.1f", report.ReadKBps),
		"writeKBps", fmt.Sprintf("%.1f", report.WriteKBps),
		"totalMB", report.TotalMB,
		"freeMB", report.FreeMB,
		"health", report.Detail,
	)
	if !report.Healthy {
		return fmt.Errorf("card health check failed: %s", report.Detail)
	}
	return nil
}
