// dashboard.go
package gsc

// Dashboard is everything one render of the report needs, computed
// fresh from the raw file bytes and the interaction's filter config.
// Top, opportunities, alerts and the KPI block are all taken over the
// filtered view; Table keeps the full coerced data for the raw
// preview and for sizing the filter controls.
type Dashboard struct {
	Table         *Table
	Filtered      *Table
	Summary       Summary
	Top           []Row
	Opportunities []Row
	Alerts        Alerts
	Trend         []TrendPoint
	Config        FilterConfig
}

// ComputeDashboard is the pipeline entry point. It is a pure
// function of its two arguments; the serving layer calls it on every
// interaction instead of keeping any processed state around.
func ComputeDashboard(raw []byte, cfg FilterConfig) (*Dashboard, error) {
	if cfg.CTRUnit == "" {
		cfg.CTRUnit = CTRUnitAuto
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}

	table, err := ReadTable(raw, cfg.CTRUnit)
	if err != nil {
		return nil, err
	}
	filtered := Filter(table, cfg)

	return &Dashboard{
		Table:         table,
		Filtered:      filtered,
		Summary:       Summarize(filtered),
		Top:           TopByClicks(filtered, cfg.TopN),
		Opportunities: Opportunities(filtered),
		Alerts:        ClassifyAlerts(filtered),
		Trend:         Trend(filtered),
		Config:        cfg,
	}, nil
}
