package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var modeNames = []any{"prefix", "substring", "fuzzy"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Appearance.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Paths.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

// Validate validates the appearance section.
func (a *Appearance) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.MaxResults, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&a.TopNHistory, validation.Required, validation.Min(1)),
		validation.Field(&a.MaxHistoryDisplay, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// Validate validates the search section.
func (s *Search) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.NormalMode, validation.Required, validation.In(modeNames...)),
		validation.Field(&s.FolderMode, validation.Required, validation.In(modeNames...)),
	)
}

// Validate validates the paths section.
func (p *Paths) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Additional, validation.Each(validation.Required)),
		validation.Field(&p.Scan),
	)
}

// Validate validates one scan path.
func (p ScanPath) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Path, validation.Required),
		validation.Field(&p.Extensions, validation.Each(validation.Required)),
	)
}

// Validate validates the log section.
func (l *Log) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("json", "text")),
		validation.Field(&l.MaxSizeMB, validation.Min(0)),
		validation.Field(&l.MaxBackups, validation.Min(0)),
		validation.Field(&l.MaxAgeDays, validation.Min(0)),
	)
}
