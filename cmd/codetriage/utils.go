package codetriage

import (
	"runtime/debug"
	"time"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/codetriage/codetriage/internal/config"
	"github.com/codetriage/codetriage/internal/engine"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: codetriage/codetriage
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "codetriage/codetriage")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// buildEngineConfig resolves flags and config files (CLI > local > global)
// into an engine configuration for the given project root.
func buildEngineConfig(root string) engine.Config {
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}

	lAudit, gAudit := lcfg.GetAuditConfig(), gcfg.GetAuditConfig()
	lCWE, gCWE := lcfg.GetCWEConfig(), gcfg.GetCWEConfig()

	auditTimeout := time.Duration(lAudit.GetTimeoutSeconds()) * time.Second
	if flagAuditTimeout > 0 {
		auditTimeout = flagAuditTimeout
	} else if lcfg.Audit == nil && gcfg.Audit != nil {
		auditTimeout = time.Duration(gAudit.GetTimeoutSeconds()) * time.Second
	}

	cweBaseURL := lCWE.GetBaseURL()
	if cweBaseURL == "" {
		cweBaseURL = gCWE.GetBaseURL()
	}

	return engine.Config{
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		AuditEnabled:    resolveAuditEnabled(flagNoAudit, lcfg.Audit, gcfg.Audit),
		AuditTimeout:    auditTimeout,
		AuditIncludeDev: pickBool(flagIncludeDev, lAudit.IncludeDev, gAudit.IncludeDev),
		CWEBaseURL:      cweBaseURL,
		CWECacheDir:     pickString(flagCWECacheDir, lCWE.CacheDir, gCWE.CacheDir),
	}
}

// resolveAuditEnabled applies CLI > local > global precedence to the audit
// toggle: --no-audit always wins, then an explicit local setting, then the
// global one, defaulting to enabled.
func resolveAuditEnabled(noAudit bool, local, global *config.AuditConfig) bool {
	if noAudit {
		return false
	}
	if local != nil && local.Enabled != nil {
		return *local.Enabled
	}
	if global != nil && global.Enabled != nil {
		return *global.Enabled
	}
	return true
}
