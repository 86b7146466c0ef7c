package audit

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jhoicas/auditpro-api/internal/application/dto"
	"github.com/jhoicas/auditpro-api/internal/domain"
	auditdomain "github.com/jhoicas/auditpro-api/internal/domain/audit"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
	"github.com/jhoicas/auditpro-api/internal/domain/scan"
	"github.com/jhoicas/auditpro-api/pkg/logger"
)

// AuditUseCase orquesta la toma física: carga del inventario teórico, escaneos,
// cierre, informe de discrepancias e historial reciente.
type AuditUseCase struct {
	txRunner    TxRunner
	sessionRepo repository.AuditSessionRepository
	itemRepo    repository.InventoryItemRepository
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
	parser      InventoryParser
	pdf         ReportPDFGenerator
	log         *logger.Logger
	now         func() time.Time
}

// NewAuditUseCase construye el caso de uso inyectando todas sus dependencias.
func NewAuditUseCase(
	txRunner TxRunner,
	sessionRepo repository.AuditSessionRepository,
	itemRepo repository.InventoryItemRepository,
	userRepo repository.UserRepository,
	historyRepo repository.HistoryRepository,
	parser InventoryParser,
	pdf ReportPDFGenerator,
	log *logger.Logger,
) *AuditUseCase {
	return &AuditUseCase{
		txRunner:    txRunner,
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		parser:      parser,
		pdf:         pdf,
		log:         log,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuditUseCase) WithClock(now func() time.Time) *AuditUseCase {
	uc.now = now
	return uc
}

// CreateSession carga el inventario teórico desde la hoja de cálculo e inicia la toma (ACTIVE).
// El auditor es siempre el usuario autenticado.
func (uc *AuditUseCase) CreateSession(ctx context.Context, username string, in dto.CreateAuditRequest, file io.Reader) (*dto.AuditResponse, error) {
	storeName := strings.TrimSpace(in.StoreName)
	if storeName == "" || file == nil {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("audit: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	items, err := uc.parser.Parse(ctx, file)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyInventory
	}
	for i := range items {
		items[i].Position = i
		items[i].PhysicalQty = 0
		items[i].ScannedAt = nil
	}

	now := uc.now()
	session := &entity.AuditSession{
		ID:           uuid.New().String(),
		StoreName:    storeName,
		AuditorName:  user.Name,
		Date:         now,
		Observations: strings.TrimSpace(in.Observations),
		Status:       entity.AuditStatusActive,
		CreatedBy:    user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(sessionRepo repository.AuditSessionRepository, itemRepo repository.InventoryItemRepository) error {
		if err := sessionRepo.Create(ctx, session); err != nil {
			return err
		}
		return itemRepo.CreateBatch(ctx, session.ID, items)
	})
	if err != nil {
		return nil, fmt.Errorf("audit: crear sesión: %w", err)
	}

	uc.log.Info().
		Str("audit_id", session.ID).
		Str("store", session.StoreName).
		Str("auditor", session.AuditorName).
		Int("items", len(items)).
		Msg("toma de inventario iniciada")

	return toAuditResponse(session, items), nil
}

// Scan resuelve una lectura del escáner y, si coincide, suma la cantidad a la línea.
// Un código no encontrado se devuelve como ScanResponse{Found:false}, nunca como error.
func (uc *AuditUseCase) Scan(ctx context.Context, sessionID, raw string) (*dto.ScanResponse, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ScanResponse
	err := uc.txRunner.Run(ctx, func(sessionRepo repository.AuditSessionRepository, itemRepo repository.InventoryItemRepository) error {
		session, err := sessionRepo.GetForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNotFound
		}
		if !session.IsActive() {
			return domain.ErrConflict
		}
		items, err := itemRepo.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}

		res := scan.Resolve(items, raw)
		if !res.Found {
			out = &dto.ScanResponse{Found: false, Message: "código no encontrado: " + res.RawInput}
			return nil
		}

		item, ok := scan.Apply(items, res, uc.now())
		if !ok {
			return fmt.Errorf("%w: el conteo de %s superaría %d unidades", domain.ErrInvalidInput, item.SKU, entity.MaxQuantity)
		}
		if err := itemRepo.UpdateCount(ctx, sessionID, item); err != nil {
			return err
		}
		itemDTO := toItemDTO(item)
		out = &dto.ScanResponse{Found: true, QuantityAdded: res.QuantityDelta, Item: &itemDTO}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := uc.log.Debug()
	if !out.Found {
		ev = uc.log.Info()
	}
	ev.Str("audit_id", sessionID).
		Str("input", strings.TrimSpace(raw)).
		Bool("found", out.Found).
		Int("qty", out.QuantityAdded).
		Msg("escaneo")

	return out, nil
}

// GetSession devuelve la cabecera y el progreso de la sesión.
func (uc *AuditUseCase) GetSession(ctx context.Context, id string) (*dto.AuditResponse, error) {
	session, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAuditResponse(session, items), nil
}

// ListItems filtra por SKU o descripción (contiene, sin distinguir mayúsculas) y ordena
// lo escaneado primero, más reciente arriba.
func (uc *AuditUseCase) ListItems(ctx context.Context, id, query string) (*dto.ItemListResponse, error) {
	_, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	filtered := items
	if q != "" {
		filtered = make([]entity.InventoryItem, 0, len(items))
		for _, it := range items {
			if strings.Contains(strings.ToLower(it.SKU), q) || strings.Contains(strings.ToLower(it.Description), q) {
				filtered = append(filtered, it)
			}
		}
	}
	sorted := auditdomain.SortForDisplay(filtered)
	return &dto.ItemListResponse{Total: len(items), Query: query, Items: toItemDTOs(sorted)}, nil
}

// Finish cierra la toma (ACTIVE → COMPLETED). observations reemplaza las observaciones si no es nil.
func (uc *AuditUseCase) Finish(ctx context.Context, id string, observations *string) (*dto.AuditResponse, error) {
	var session *entity.AuditSession
	err := uc.txRunner.Run(ctx, func(sessionRepo repository.AuditSessionRepository, _ repository.InventoryItemRepository) error {
		s, err := sessionRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if !s.IsActive() {
			return domain.ErrConflict
		}
		s.Status = entity.AuditStatusCompleted
		if observations != nil {
			s.Observations = strings.TrimSpace(*observations)
		}
		s.UpdatedAt = uc.now()
		session = s
		return sessionRepo.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("audit: listar líneas: %w", err)
	}
	uc.log.Info().Str("audit_id", id).Msg("toma de inventario finalizada")
	return toAuditResponse(session, items), nil
}

// Cancel descarta una toma no finalizada junto con sus conteos.
func (uc *AuditUseCase) Cancel(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(sessionRepo repository.AuditSessionRepository, _ repository.InventoryItemRepository) error {
		s, err := sessionRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if s.Status == entity.AuditStatusCompleted {
			return domain.ErrConflict
		}
		return sessionRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("audit_id", id).Msg("toma de inventario cancelada")
	return nil
}

// Report construye el informe de discrepancias con todas las líneas en orden de carga.
func (uc *AuditUseCase) Report(ctx context.Context, id string) (*dto.ReportResponse, error) {
	session, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := auditdomain.Summarize(items)
	return &dto.ReportResponse{
		Audit:              *toAuditResponse(session, items),
		TotalItems:         sum.TotalItems,
		TotalDiscrepancies: sum.TotalDiscrepancies,
		AccuracyPct:        sum.AccuracyPct,
		Lines:              toItemDTOs(items),
	}, nil
}

// Export genera el PDF de una toma finalizada y la registra en el historial reciente.
//
// Retorna:
//   - (pdfBytes, filename, nil)       si todo sale bien.
//   - domain.ErrNotFound              si la sesión no existe.
//   - domain.ErrAuditNotCompleted     si la toma sigue activa.
func (uc *AuditUseCase) Export(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	session, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if session.Status != entity.AuditStatusCompleted {
		return nil, "", domain.ErrAuditNotCompleted
	}
	session.Items = items
	sum := auditdomain.Summarize(items)

	pdfBytes, err = uc.pdf.GenerateReportPDF(ctx, session, sum)
	if err != nil {
		return nil, "", fmt.Errorf("audit: generar PDF: %w", err)
	}

	entry := entity.HistoryEntry{
		ID:                 session.ID,
		StoreName:          session.StoreName,
		Date:               session.Date,
		AuditorName:        session.AuditorName,
		TotalItems:         sum.TotalItems,
		TotalDiscrepancies: sum.TotalDiscrepancies,
		AccuracyPct:        sum.AccuracyPct,
	}
	if err := uc.historyRepo.Push(ctx, entry); err != nil {
		return nil, "", fmt.Errorf("audit: guardar historial: %w", err)
	}

	uc.log.Info().
		Str("audit_id", session.ID).
		Int("discrepancies", sum.TotalDiscrepancies).
		Str("accuracy_pct", sum.AccuracyPct.StringFixed(2)).
		Msg("informe de auditoría exportado")

	return pdfBytes, ReportFilename(session.StoreName, uc.now()), nil
}

// History devuelve las auditorías guardadas más recientes (máximo repository.HistoryLimit).
func (uc *AuditUseCase) History(ctx context.Context) ([]dto.HistoryEntryDTO, error) {
	entries, err := uc.historyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit: listar historial: %w", err)
	}
	out := make([]dto.HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHistoryDTO(e))
	}
	return out, nil
}

// ReportFilename nombre del PDF: Auditoria_<tienda>_<AAAA-MM-DD>.pdf
// El nombre de la tienda no puede aportar separadores de ruta ni caracteres de control.
func ReportFilename(storeName string, at time.Time) string {
	return fmt.Sprintf("Auditoria_%s_%s.pdf", safeFilePart(storeName), at.Format("2006-01-02"))
}

func safeFilePart(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/', r == '\\', r == ':', r == '"', unicode.IsControl(r):
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	s = strings.Trim(s, ". ")
	if s == "" {
		return "tienda"
	}
	return s
}

func (uc *AuditUseCase) load(ctx context.Context, id string) (*entity.AuditSession, []entity.InventoryItem, error) {
	session, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("audit: obtener sesión: %w", err)
	}
	if session == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListBySession(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("audit: listar líneas: %w", err)
	}
	return session, items, nil
}
