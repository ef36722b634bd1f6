package http

import (
	"github.com/jose29di/sisinventario/internal/application/counting"
	"github.com/jose29di/sisinventario/internal/application/dto"
	"github.com/jose29di/sisinventario/internal/application/export"
	"github.com/jose29di/sisinventario/internal/application/report"
	appsync "github.com/jose29di/sisinventario/internal/application/sync"
	"github.com/jose29di/sisinventario/internal/domain/entity"
)

// Conversión entidad -> DTO. Las cantidades decimales viajan como string
// para no perder precisión en JSON.

func presentSession(s *entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Responsible: s.Responsible,
		Warehouse:   s.Warehouse,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
	}
}

func presentTeam(t *entity.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		Members:   t.Members,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
	}
}

func presentItem(it *entity.Item, status string) dto.ItemSummaryResponse {
	out := dto.ItemSummaryResponse{
		Code:        it.Code,
		Product:     it.Product,
		Line:        it.Line,
		SystemStock: it.SystemStock.String(),
		CountedQty:  it.CountedQty.String(),
		Counted:     it.Counted(),
		Status:      status,
		Note:        it.Note,
	}
	if it.Counted() {
		out.Difference = it.Difference().String()
	}
	if it.LastTeamID != nil {
		out.TeamID = *it.LastTeamID
	}
	return out
}

func presentItems(items []entity.Item) []dto.ItemSummaryResponse {
	out := make([]dto.ItemSummaryResponse, 0, len(items))
	for i := range items {
		out = append(out, presentItem(&items[i], report.StatusOf(&items[i])))
	}
	return out
}

func presentMovement(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ItemCode:  m.ItemCode,
		TeamID:    m.TeamID,
		Action:    m.Action,
		QtyBefore: m.QtyBefore.String(),
		QtyAfter:  m.QtyAfter.String(),
		CreatedAt: m.CreatedAt,
	}
}

func presentMovements(ms []entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(ms))
	for i := range ms {
		out = append(out, presentMovement(&ms[i]))
	}
	return out
}

func presentKPI(k report.KPI) dto.KPIResponse {
	return dto.KPIResponse{
		Total:     k.Total,
		Counted:   k.Counted,
		Exact:     k.Exact,
		Shortages: k.Shortages,
		Overages:  k.Overages,
		Progress:  k.Progress,
		Accuracy:  k.Accuracy,
	}
}

func presentSnapshot(c *appsync.Cached) dto.SnapshotResponse {
	snap := c.Snapshot
	return dto.SnapshotResponse{
		SessionID:     snap.SessionID,
		KPI:           presentKPI(snap.KPI),
		Pending:       presentItems(snap.Pending),
		Discrepancies: presentItems(snap.Discrepancies),
		Recent:        presentMovements(snap.Recent),
		GeneratedAt:   snap.GeneratedAt,
		Stale:         c.Stale,
	}
}

func presentOutcome(o *counting.Outcome, warning string) dto.CountOutcomeResponse {
	out := dto.CountOutcomeResponse{
		Code:         o.Code,
		Applied:      o.Applied,
		Action:       o.Action,
		Duplicate:    o.Duplicate,
		SubmittedQty: o.SubmittedQty.String(),
		Warning:      warning,
	}
	if o.Duplicate || o.Applied {
		out.CurrentQty = o.CurrentQty.String()
	}
	if o.Duplicate {
		out.SumCandidate = o.SumCandidate.String()
		out.ReplaceCandidate = o.ReplaceCandidate.String()
	}
	if o.Conflict != nil {
		out.Conflict = &dto.ConflictInfo{
			TeamID:   o.Conflict.TeamID,
			TeamName: o.Conflict.TeamName,
			Quantity: o.Conflict.Quantity.String(),
			At:       o.Conflict.At,
		}
	}
	return out
}

func presentExportRow(row export.Row) dto.ExportItemRow {
	out := dto.ExportItemRow{
		Code:        row.Item.Code,
		Product:     row.Item.Product,
		Line:        row.Item.Line,
		SystemStock: row.Item.SystemStock.String(),
		CountedQty:  row.Item.CountedQty.String(),
		Difference:  row.Item.Difference().String(),
		Status:      row.Status,
		Note:        row.Item.Note,
		TeamName:    row.TeamName,
		CountedAt:   row.Item.CountedAt,
	}
	return out
}

func presentExport(data *export.Data) dto.ExportResponse {
	out := dto.ExportResponse{
		Session:     presentSession(data.Session),
		KPI:         presentKPI(data.KPI),
		History:     presentMovements(data.History),
		GeneratedAt: data.GeneratedAt,
	}
	for _, row := range data.Items {
		out.Items = append(out.Items, presentExportRow(row))
	}
	for _, row := range data.Discrepancies {
		out.Discrepancies = append(out.Discrepancies, presentExportRow(row))
	}
	for _, row := range data.Pending {
		out.Pending = append(out.Pending, presentExportRow(row))
	}
	return out
}
