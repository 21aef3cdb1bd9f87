package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/cricstack/fantasy-core/external/cricketdata"
	"github.com/cricstack/fantasy-core/internal/platform/logging"
)

// CricketProvider is the slice of the provider client the sync loops need.
type CricketProvider interface {
	Countries(ctx context.Context, offset int) ([]cricketdata.RawCountry, bool, error)
	Series(ctx context.Context, offset int) ([]cricketdata.RawSeries, bool, error)
	Players(ctx context.Context, offset int) ([]cricketdata.RawPlayer, bool, error)
	Matches(ctx context.Context, offset int) ([]cricketdata.RawMatch, bool, error)
	SearchPlayers(ctx context.Context, term string) ([]cricketdata.RawPlayer, error)
}

const (
	defaultPlayerSyncLimit = 500
	defaultMatchSyncLimit  = 200
)

const (
	SyncKindAll       = "all"
	SyncKindCountries = "countries"
	SyncKindSeries    = "series"
	SyncKindPlayers   = "players"
	SyncKindMatches   = "matches"
)

// SyncReport summarizes one sync pass. Fetched counts raw records received,
// Upserted counts records that reached the store, Skipped counts records
// dropped by validation or resolution.
type SyncReport struct {
	Kind     string
	Fetched  int
	Upserted int
	Skipped  int
}

// SyncService drives paginated ingestion from the provider into the canonical
// store. A failing record never aborts a pass; it is logged and skipped so
// one malformed row cannot starve the rest of the feed.
type SyncService struct {
	provider CricketProvider
	resolver *ResolverService
	logger   *logging.Logger
}

func NewSyncService(provider CricketProvider, resolver *ResolverService, logger *logging.Logger) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		provider: provider,
		resolver: resolver,
		logger:   logger,
	}
}

// Initialize runs the bootstrap sequence: countries, series, players, matches.
// A failing stage is logged and the sequence continues, so a cold store still
// gets whatever the provider can serve.
func (s *SyncService) Initialize(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Initialize")
	defer span.End()

	var firstErr error
	stages := []struct {
		kind string
		run  func(context.Context) (SyncReport, error)
	}{
		{SyncKindCountries, s.SyncCountries},
		{SyncKindSeries, s.SyncSeries},
		{SyncKindPlayers, func(ctx context.Context) (SyncReport, error) { return s.SyncPlayers(ctx, 0) }},
		{SyncKindMatches, func(ctx context.Context) (SyncReport, error) { return s.SyncMatches(ctx, 0) }},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		report, err := stage.run(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "bootstrap stage failed", "kind", stage.kind, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.logger.InfoContext(ctx, "bootstrap stage completed",
			"kind", report.Kind, "fetched", report.Fetched, "upserted", report.Upserted, "skipped", report.Skipped)
	}

	return firstErr
}

func (s *SyncService) SyncCountries(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncCountries")
	defer span.End()

	report := SyncReport{Kind: SyncKindCountries}
	err := s.paginate(ctx, 0, func(ctx context.Context, offset int) (int, bool, error) {
		page, hasMore, err := s.provider.Countries(ctx, offset)
		if err != nil {
			return 0, false, err
		}
		for _, raw := range page {
			report.Fetched++
			if _, upsertErr := s.resolver.UpsertCountry(ctx, raw); upsertErr != nil {
				report.Skipped++
				s.logger.WarnContext(ctx, "skipping country record", "id", raw.ID, "error", upsertErr)
				continue
			}
			report.Upserted++
		}
		return len(page), hasMore, nil
	})

	return report, err
}

func (s *SyncService) SyncSeries(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncSeries")
	defer span.End()

	report := SyncReport{Kind: SyncKindSeries}
	err := s.paginate(ctx, 0, func(ctx context.Context, offset int) (int, bool, error) {
		page, hasMore, err := s.provider.Series(ctx, offset)
		if err != nil {
			return 0, false, err
		}
		for _, raw := range page {
			report.Fetched++
			if _, upsertErr := s.resolver.UpsertSeries(ctx, raw); upsertErr != nil {
				report.Skipped++
				s.logger.WarnContext(ctx, "skipping series record", "id", raw.ID, "error", upsertErr)
				continue
			}
			report.Upserted++
		}
		return len(page), hasMore, nil
	})

	return report, err
}

// SyncPlayers ingests players up to limit records; limit <= 0 uses the
// default of 500.
func (s *SyncService) SyncPlayers(ctx context.Context, limit int) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncPlayers")
	defer span.End()

	if limit <= 0 {
		limit = defaultPlayerSyncLimit
	}

	report := SyncReport{Kind: SyncKindPlayers}
	err := s.paginate(ctx, limit, func(ctx context.Context, offset int) (int, bool, error) {
		page, hasMore, err := s.provider.Players(ctx, offset)
		if err != nil {
			return 0, false, err
		}
		for _, raw := range page {
			if report.Fetched >= limit {
				return len(page), false, nil
			}
			report.Fetched++
			if _, upsertErr := s.resolver.UpsertPlayer(ctx, raw); upsertErr != nil {
				report.Skipped++
				s.logger.WarnContext(ctx, "skipping player record", "id", raw.ID, "name", raw.Name, "error", upsertErr)
				continue
			}
			report.Upserted++
		}
		return len(page), hasMore, nil
	})

	return report, err
}

// SyncMatches ingests matches up to limit records; limit <= 0 uses the
// default of 200. Matches whose teams cannot be resolved are skipped.
func (s *SyncService) SyncMatches(ctx context.Context, limit int) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncMatches")
	defer span.End()

	if limit <= 0 {
		limit = defaultMatchSyncLimit
	}

	report := SyncReport{Kind: SyncKindMatches}
	err := s.paginate(ctx, limit, func(ctx context.Context, offset int) (int, bool, error) {
		page, hasMore, err := s.provider.Matches(ctx, offset)
		if err != nil {
			return 0, false, err
		}
		for _, raw := range page {
			if report.Fetched >= limit {
				return len(page), false, nil
			}
			report.Fetched++
			if _, upsertErr := s.resolver.UpsertMatch(ctx, raw); upsertErr != nil {
				report.Skipped++
				s.logger.WarnContext(ctx, "skipping match record", "id", raw.ID, "error", upsertErr)
				continue
			}
			report.Upserted++
		}
		return len(page), hasMore, nil
	})

	return report, err
}

// ForceSync runs one pass for the named kind on demand. Kind "all" runs the
// four kinds in bootstrap order. Unknown kinds fail fast so operator typos
// surface immediately.
func (s *SyncService) ForceSync(ctx context.Context, kind string, limit int) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.ForceSync")
	defer span.End()

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case SyncKindAll:
		return s.syncAll(ctx, limit)
	case SyncKindCountries:
		return s.SyncCountries(ctx)
	case SyncKindSeries:
		return s.SyncSeries(ctx)
	case SyncKindPlayers:
		return s.SyncPlayers(ctx, limit)
	case SyncKindMatches:
		return s.SyncMatches(ctx, limit)
	default:
		return SyncReport{}, fmt.Errorf("%w: unknown sync kind %q", ErrInvalidInput, kind)
	}
}

// syncAll runs every kind in bootstrap order and aggregates the counts. A
// failing kind is logged and the rest still run; the first error comes back
// alongside the combined report.
func (s *SyncService) syncAll(ctx context.Context, limit int) (SyncReport, error) {
	total := SyncReport{Kind: SyncKindAll}
	var firstErr error
	for _, run := range []func(context.Context) (SyncReport, error){
		s.SyncCountries,
		s.SyncSeries,
		func(ctx context.Context) (SyncReport, error) { return s.SyncPlayers(ctx, limit) },
		func(ctx context.Context) (SyncReport, error) { return s.SyncMatches(ctx, limit) },
	} {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		report, err := run(ctx)
		total.Fetched += report.Fetched
		total.Upserted += report.Upserted
		total.Skipped += report.Skipped
		if err != nil {
			s.logger.WarnContext(ctx, "forced sync stage failed", "kind", report.Kind, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return total, firstErr
}

// SearchAndSync queries the provider for players matching term and upserts
// every hit.
func (s *SyncService) SearchAndSync(ctx context.Context, term string) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SearchAndSync")
	defer span.End()

	term = strings.TrimSpace(term)
	if term == "" {
		return SyncReport{}, fmt.Errorf("%w: search term is required", ErrInvalidInput)
	}

	hits, err := s.provider.SearchPlayers(ctx, term)
	if err != nil {
		return SyncReport{}, fmt.Errorf("%w: search players: %v", ErrProvider, err)
	}

	report := SyncReport{Kind: SyncKindPlayers, Fetched: len(hits)}
	for _, raw := range hits {
		if _, upsertErr := s.resolver.UpsertPlayer(ctx, raw); upsertErr != nil {
			report.Skipped++
			s.logger.WarnContext(ctx, "skipping searched player", "id", raw.ID, "name", raw.Name, "error", upsertErr)
			continue
		}
		report.Upserted++
	}

	return report, nil
}

// paginate walks provider pages until the feed is exhausted, the record limit
// is reached, or the context is cancelled. A provider error ends the pass and
// is returned with whatever the caller accumulated so far.
func (s *SyncService) paginate(ctx context.Context, limit int, fetch func(ctx context.Context, offset int) (int, bool, error)) error {
	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limit > 0 && offset >= limit {
			return nil
		}

		pageLen, hasMore, err := fetch(ctx, offset)
		if err != nil {
			return fmt.Errorf("%w: page offset=%d: %v", ErrProvider, offset, err)
		}
		if pageLen == 0 || !hasMore {
			return nil
		}
		offset += pageLen
	}
}
