package http

import (
	"warecopilot/frontend/chat"
	"warecopilot/frontend/exports"
	"warecopilot/frontend/inventory"
	"warecopilot/frontend/receiving"
	"warecopilot/frontend/report"
)

// RegisterRoutes wires every feature package onto the router.
func (s *Server) RegisterRoutes() {
	s.router.Get("/api/inventory", inventory.InventoryQueryHandler(s.DB))
	s.router.Get("/api/inventory/export.csv", exports.InventoryExportCSVHandler(s.DB, s.Audit))

	s.router.Post("/receiving/confirm", receiving.ConfirmCommandHandler(s.DB, s.Audit))
	s.router.Patch("/receiving/lines/{id}", receiving.PatchLineCommandHandler(s.DB, s.Audit))
	s.router.Patch("/receiving/headers/{id}", receiving.PatchHeaderCommandHandler(s.DB, s.Audit))
	s.router.Delete("/receiving/lines/{id}", receiving.DeleteLineCommandHandler(s.DB, s.Audit))
	s.router.Get("/receiving/{id}/grn.pdf", receiving.GRNQueryHandler(s.DB))

	s.router.Post("/chat/interpret", chat.InterpretCommandHandler(s.Chat))
	s.router.Post("/chat/respond", chat.RespondCommandHandler(s.Responder))
	s.router.Post("/chat/transcribe", chat.TranscribeCommandHandler(s.Transcriber))

	s.router.Get("/report", report.ReportPageQueryHandler(s.DB))
}
