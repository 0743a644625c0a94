package service

import (
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/assets"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/mailer"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/report"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/store"
	"go.uber.org/zap"
)

// NewFromConfig wires the asset cache, renderers, and optional mailer around st.
// shared may be nil.
func NewFromConfig(cfg *config.Config, st store.Store, shared assets.SharedStore) *ReportService {
	cache := assets.New(assets.Options{
		BaseURL:   cfg.Assets.BaseURL,
		LogoPath:  cfg.Assets.LogoPath,
		CoverPath: cfg.Assets.CoverPath,
		Shared:    shared,
		SharedTTL: cfg.Assets.SharedTTL,
	})
	registry := report.NewDefaultRegistry(report.NewPDFRenderer(cache, st))

	svc := NewReportService(st, registry, Options{
		HotelName:       cfg.Report.HotelName,
		DefaultPreparer: cfg.Report.DefaultPreparer,
		ShareBaseURL:    cfg.Report.ShareBaseURL,
		Formatter:       report.Formatter{CurrencySymbol: cfg.Report.CurrencySymbol},
	})

	if cfg.SMTPConfigured() {
		sender, err := mailer.NewSMTPSender(cfg.SMTP)
		if err != nil {
			zap.L().Warn("E-mail sharing disabled", zap.Error(err))
		} else {
			svc.WithMailer(sender)
		}
	}
	return svc
}
