package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/cricstack/fantasy-core/internal/domain/performance"
	"github.com/cricstack/fantasy-core/internal/platform/logging"
	"github.com/cricstack/fantasy-core/internal/usecase"
)

const maxRequestBody = 1 << 20

// Handler exposes the sync, scoring, and leaderboard operations over HTTP.
type Handler struct {
	sync         *usecase.SyncService
	scoring      *usecase.ScoringService
	leaderboards *usecase.LeaderboardService
	performances performance.Repository
	logger       *logging.Logger
	validate     *validator.Validate
}

func NewHandler(
	syncSvc *usecase.SyncService,
	scoringSvc *usecase.ScoringService,
	leaderboardSvc *usecase.LeaderboardService,
	performanceRepo performance.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sync:         syncSvc,
		scoring:      scoringSvc,
		leaderboards: leaderboardSvc,
		performances: performanceRepo,
		logger:       logger,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type forceSyncRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=all countries series players matches"`
	Limit int    `json:"limit" validate:"gte=0"`
}

func (h *Handler) ForceSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ForceSync")
	defer span.End()

	var req forceSyncRequest
	if err := h.decode(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.sync.ForceSync(ctx, req.Kind, req.Limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

type searchSyncRequest struct {
	Term string `json:"term" validate:"required,min=2"`
}

func (h *Handler) SearchAndSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchAndSync")
	defer span.End()

	var req searchSyncRequest
	if err := h.decode(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.sync.SearchAndSync(ctx, req.Term)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunBackfill(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBackfill")
	defer span.End()

	report, err := h.scoring.UpdateFantasyPointsForCompletedMatches(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

type ingestPerformanceRequest struct {
	PlayerID string  `json:"playerId" validate:"required"`
	MatchID  string  `json:"matchId" validate:"required"`
	Runs     int     `json:"runs" validate:"gte=0"`
	Balls    int     `json:"ballsFaced" validate:"gte=0"`
	Fours    int     `json:"fours" validate:"gte=0"`
	Sixes    int     `json:"sixes" validate:"gte=0"`
	IsOut    bool    `json:"isOut"`
	Overs    float64 `json:"overs" validate:"gte=0"`
	Maidens  int     `json:"maidens" validate:"gte=0"`
	Conceded int     `json:"runsConceded" validate:"gte=0"`
	Wickets  int     `json:"wickets" validate:"gte=0"`
	Catches  int     `json:"catches" validate:"gte=0"`
	Stumps   int     `json:"stumps" validate:"gte=0"`
	RunOuts  int     `json:"runOuts" validate:"gte=0"`
}

func (h *Handler) IngestPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestPerformance")
	defer span.End()

	var req ingestPerformanceRequest
	if err := h.decode(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	perf := performance.Performance{
		PlayerID: req.PlayerID,
		MatchID:  req.MatchID,
		Batting: performance.Batting{
			Runs:       req.Runs,
			BallsFaced: req.Balls,
			Fours:      req.Fours,
			Sixes:      req.Sixes,
			IsOut:      req.IsOut,
		},
		Bowling: performance.Bowling{
			Overs:        req.Overs,
			Maidens:      req.Maidens,
			RunsConceded: req.Conceded,
			Wickets:      req.Wickets,
		},
		Fielding: performance.Fielding{
			Catches: req.Catches,
			Stumps:  req.Stumps,
			RunOuts: req.RunOuts,
		},
	}

	if err := h.performances.Upsert(ctx, perf); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, perf)
}

func (h *Handler) ScoreMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreMatch")
	defer span.End()

	scored, err := h.scoring.ScoreMatch(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"scored": scored})
}

func (h *Handler) MatchLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MatchLeaderboard")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboards.MatchLeaderboard(ctx, r.PathValue("matchID"), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) OverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OverallLeaderboard")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboards.OverallLeaderboard(ctx, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) PlayerTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerTrend")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboards.PlayerTrend(ctx, r.PathValue("playerID"), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) decode(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("%w: invalid limit %q", usecase.ErrInvalidInput, raw)
	}

	return limit, nil
}
