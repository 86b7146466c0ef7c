package audit

import (
	"github.com/jhoicas/auditpro-api/internal/application/dto"
	auditdomain "github.com/jhoicas/auditpro-api/internal/domain/audit"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

func toItemDTO(it entity.InventoryItem) dto.ItemDTO {
	return dto.ItemDTO{
		ID:             it.ID,
		SKU:            it.SKU,
		Description:    it.Description,
		TheoreticalQty: it.TheoreticalQty,
		PhysicalQty:    it.PhysicalQty,
		Difference:     it.Difference(),
		ScannedAt:      it.ScannedAt,
	}
}

func toItemDTOs(items []entity.InventoryItem) []dto.ItemDTO {
	out := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	return out
}

func toAuditResponse(s *entity.AuditSession, items []entity.InventoryItem) *dto.AuditResponse {
	sum := auditdomain.Summarize(items)
	return &dto.AuditResponse{
		ID:           s.ID,
		StoreName:    s.StoreName,
		AuditorName:  s.AuditorName,
		Date:         s.Date,
		Observations: s.Observations,
		Status:       s.Status,
		Progress: dto.ProgressDTO{
			TotalItems:    sum.TotalItems,
			TotalPhysical: sum.TotalPhysical,
			ScannedLines:  sum.ScannedLines,
			ProgressPct:   sum.ProgressPct,
		},
	}
}

func toHistoryDTO(e entity.HistoryEntry) dto.HistoryEntryDTO {
	return dto.HistoryEntryDTO{
		ID:                 e.ID,
		StoreName:          e.StoreName,
		Date:               e.Date,
		AuditorName:        e.AuditorName,
		TotalItems:         e.TotalItems,
		TotalDiscrepancies: e.TotalDiscrepancies,
		AccuracyPct:        e.AccuracyPct,
	}
}
