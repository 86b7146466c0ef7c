package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/auditpro-api/internal/application/audit"
	auditdomain "github.com/jhoicas/auditpro-api/internal/domain/audit"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/scan"
	"github.com/jhoicas/auditpro-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/auditpro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/auditpro-api/pkg/logger"
)

type options struct {
	file    string
	store   string
	auditor string
	outDir  string
	verbose bool
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "audit-cli",
		Short: "Toma física de inventario desde la terminal",
		Long: `Carga el inventario teórico desde un Excel y lee escaneos por stdin, uno por línea.
Formatos: CODIGO, "CODIGO CANT", CANT*CODIGO, CODIGO*CANT.
Al cerrar la entrada (Ctrl+D) escribe el informe PDF en --out.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.Nop()
			if opts.verbose {
				log = logger.New(logger.Config{Env: "development", Level: "debug"})
			}
			return runAudit(cmd.Context(), opts, in, out, log, time.Now)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "Excel del inventario teórico (SKU, Descripcion, Cantidad)")
	f.StringVarP(&opts.store, "store", "s", "", "nombre de la tienda")
	f.StringVarP(&opts.auditor, "auditor", "a", "", "responsable de la toma")
	f.StringVarP(&opts.outDir, "out", "o", ".", "directorio donde se escribe el PDF")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log de depuración")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("auditor")
	return cmd
}

func runAudit(ctx context.Context, opts options, in io.Reader, out io.Writer, log *logger.Logger, now func() time.Time) error {
	if strings.TrimSpace(opts.store) == "" || strings.TrimSpace(opts.auditor) == "" {
		return fmt.Errorf("--store y --auditor no pueden estar vacíos")
	}

	fh, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", opts.file, err)
	}
	items, err := excel.NewInventoryParser().Parse(ctx, fh)
	_ = fh.Close()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("%s no tiene líneas de inventario", opts.file)
	}
	for i := range items {
		items[i].Position = i
	}

	session := &entity.AuditSession{
		ID:          uuid.New().String(),
		StoreName:   strings.TrimSpace(opts.store),
		AuditorName: strings.TrimSpace(opts.auditor),
		Date:        now(),
		Status:      entity.AuditStatusActive,
	}
	fmt.Fprintf(out, "%d líneas cargadas para %s. Escanee (Ctrl+D para terminar):\n", len(items), session.StoreName)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		raw := sc.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		res := scan.Resolve(items, raw)
		if !res.Found {
			log.Info().Str("input", res.RawInput).Msg("código no encontrado")
			fmt.Fprintf(out, "✘ código no encontrado: %s\n", res.RawInput)
			continue
		}
		item, ok := scan.Apply(items, res, now())
		if !ok {
			log.Warn().Str("sku", item.SKU).Int("qty", res.QuantityDelta).Msg("cantidad fuera de rango")
			fmt.Fprintf(out, "✘ cantidad fuera de rango para %s: %d/%d\n", item.SKU, item.PhysicalQty, entity.MaxQuantity)
			continue
		}
		log.Debug().Str("sku", item.SKU).Int("qty", res.QuantityDelta).Msg("escaneo")
		fmt.Fprintf(out, "✔ %s  +%d  (%d/%d) %s\n",
			item.SKU, res.QuantityDelta, item.PhysicalQty, item.TheoreticalQty, item.Description)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("leer escaneos: %w", err)
	}

	session.Status = entity.AuditStatusCompleted
	session.Items = items
	sum := auditdomain.Summarize(items)

	pdf, err := infrapdf.NewMarotoReportGenerator().GenerateReportPDF(ctx, session, sum)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("crear %s: %w", opts.outDir, err)
	}
	path := filepath.Join(opts.outDir, audit.ReportFilename(session.StoreName, session.Date))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("escribir informe: %w", err)
	}

	fmt.Fprintf(out, "Total ítems: %d | Discrepancias: %d | Exactitud: %s%%\n",
		sum.TotalItems, sum.TotalDiscrepancies, sum.AccuracyPct.StringFixed(2))
	fmt.Fprintf(out, "Informe: %s\n", path)
	return nil
}
