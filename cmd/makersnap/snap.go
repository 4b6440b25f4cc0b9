package main

import (
	"fmt"

	"github.com/jmoskal/makersnap"
)

// Run executes the capture: load, extract, persist, report.
func (c *SnapCmd) Run(deps *Dependencies) error {
	page, err := deps.Loader.Load(deps.Ctx, c.URL)
	if err != nil {
		// Navigation failures produce no artifacts: no DOM existed yet.
		fmt.Fprintf(deps.Stderr, "failed %s %s: %s\n", makersnap.ErrorCode(err), c.URL, makersnap.ErrorMessage(err))
		return err
	}

	profile, diag, err := deps.Extractor.Extract(page.HTML, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "failed %s %s: %s\n", makersnap.ErrorCode(err), c.URL, makersnap.ErrorMessage(err))
		return err
	}

	run := &makersnap.Run{
		Profile:     profile,
		Diagnostics: diag,
		HTML:        page.HTML,
		Screenshot:  page.Screenshot,
	}

	if deps.Converter != nil {
		md, err := deps.Converter.Convert(page.HTML)
		if err != nil {
			// The markdown rendition is a convenience artifact; a failed
			// conversion degrades the run instead of failing it.
			fmt.Fprintf(deps.Stderr, "skip markdown: %s\n", makersnap.ErrorMessage(err))
		} else {
			run.Markdown = md
		}
	}

	paths, err := deps.Writer.WriteRun(deps.Ctx, run)
	if err != nil {
		return err
	}

	if deps.Snapshots != nil {
		if err := c.archive(deps, profile, diag); err != nil {
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "ok %s account=%q points=%d models=%d dir=%s\n",
		c.URL, profile.AccountName, profile.Points, len(profile.Models), paths.Dir)

	return nil
}

// archive records the run in the capture history, model rows in document
// order.
func (c *SnapCmd) archive(deps *Dependencies, profile *makersnap.Profile, diag *makersnap.Diagnostics) error {
	snap := &makersnap.Snapshot{
		SourceURL:     profile.SourceURL,
		AccountName:   profile.AccountName,
		Points:        profile.Points,
		ModelCount:    len(profile.Models),
		HTMLSizeBytes: diag.HTMLSizeBytes,
		ContentHash:   diag.ContentHash,
	}

	models := make([]*makersnap.SnapshotModel, 0, len(profile.ModelOrder))
	for _, id := range profile.ModelOrder {
		entry := profile.Models[id]
		models = append(models, &makersnap.SnapshotModel{
			ModelID: entry.ID,
			Title:   entry.Title,
			Metrics: entry.RawMetricsNumbers,
		})
	}

	return deps.Snapshots.CreateSnapshot(deps.Ctx, snap, models)
}
