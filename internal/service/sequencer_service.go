//go:generate mockery --name SequencerService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"sort"
	"time"

	"langfeed/internal/cache"
	"langfeed/internal/config"
	"langfeed/internal/middleware"
	"langfeed/internal/model"
	"langfeed/internal/repository"

	"gorm.io/gorm"
)

// SequencerService は適応型フィードの「次のアイテム」を決定します。
// 呼び出しごとにステートレスで、呼び出し間の状態は外部キャッシュだけです。
type SequencerService interface {
	// NextItem は次に出すアイテムを返します。
	// 候補が無い場合は Item が nil のレスポンスを返し、フォールバックは呼び出し側の責務です。
	NextItem(ctx context.Context, req *model.NextFeedRequest) (*model.NextFeedResponse, error)
}

// スコアの重み付け。difficulty / comprehension / path / sequence / dopamine / due-boost
const (
	weightDifficulty    = 0.35
	weightComprehension = 0.25
	weightPath          = 0.15
	weightSequence      = 0.15
	weightDopamine      = 0.08
	weightDueBoost      = 0.07

	// 理解度バンド外のスコア。全語既知 (学習価値なし) はさらに下げる
	comprehensionOutOfBand = 0.45
	comprehensionAllKnown  = 0.20

	minCandidateScore = 0.25
)

type sequencerService struct {
	db          *gorm.DB
	wordRepo    repository.WordRepository
	contentRepo repository.ContentRepository
	feedCache   cache.FeedCache
	cfg         *config.Config
}

func NewSequencerService(db *gorm.DB, wordRepo repository.WordRepository, contentRepo repository.ContentRepository, feedCache cache.FeedCache, cfg *config.Config) SequencerService {
	return &sequencerService{
		db:          db,
		wordRepo:    wordRepo,
		contentRepo: contentRepo,
		feedCache:   feedCache,
		cfg:         cfg,
	}
}

// clampTier はティアを [1, max_tier] に収めます
func (s *sequencerService) clampTier(tier int) int {
	if tier < 1 {
		return 1
	}
	if tier > s.cfg.App.MaxTier {
		return s.cfg.App.MaxTier
	}
	return tier
}

func (s *sequencerService) NextItem(ctx context.Context, req *model.NextFeedRequest) (*model.NextFeedResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", req.UserID)

	if req.UserID == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "ユーザーIDは必須項目です。", "user_id", model.ErrInvalidInput)
	}

	exclude := req.ExcludeSet()

	// 1. キャッシュ済みキューがあれば原子的に先頭を取り出す
	if req.CacheEnabled() {
		if item := s.popCached(ctx, req.UserID, exclude); item != nil {
			logger.Debug("Served next item from cached queue", "content_id", item.ContentID)
			return &model.NextFeedResponse{
				Item: item,
				Context: model.FeedContext{
					TargetDifficultyTier: item.DifficultyTier,
					LearningPathID:       item.LearningPathID,
					FromCache:            true,
				},
			}, nil
		}
	}

	// 2. 現在表示中のアイテムから難易度コンテキストを得る
	var current *model.Content
	if req.CurrentContentID != "" {
		current = s.lookupContent(ctx, req.CurrentContentID)
	}

	targetTier := s.targetTier(current, req.Feedback)

	// 3. ターゲット±1ティアの候補プールを作る
	candidates, err := s.contentRepo.FindCandidates(ctx, s.db, repository.CandidateFilter{
		MinTier:    s.clampTier(targetTier - 1),
		MaxTier:    s.clampTier(targetTier + 1),
		ExcludeIDs: excludeIDList(exclude),
		Limit:      s.cfg.App.CandidateLimit,
	})
	if err != nil {
		logger.Error("Failed to load candidate pool", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテンツ候補の取得に失敗しました。", "", err)
	}

	if len(candidates) == 0 {
		logger.Info("No personalized candidates available", "target_tier", targetTier)
		return &model.NextFeedResponse{
			Context: model.FeedContext{TargetDifficultyTier: targetTier},
		}, nil
	}

	// 4. 理解度バンドと難易度近接で候補をランキングする。
	//    学習パスの続きがあれば、スコアに関わらず決定的に先頭へ置く (新規性よりも継続を優先)。
	//    残りはランキング順のままキューに積まれる
	dueWords := s.dueWordSet(ctx, req.UserID)
	ordered := s.rankCandidates(candidates, targetTier, current, dueWords)
	if idx := s.pathContinuationIndex(current, candidates); idx >= 0 {
		pinned := make([]int, 0, len(ordered)+1)
		pinned = append(pinned, idx)
		for _, i := range ordered {
			if i != idx {
				pinned = append(pinned, i)
			}
		}
		ordered = pinned
	}
	if len(ordered) == 0 {
		logger.Info("All candidates scored below threshold", "target_tier", targetTier)
		return &model.NextFeedResponse{
			Context: model.FeedContext{TargetDifficultyTier: targetTier},
		}, nil
	}

	chosen := candidates[ordered[0]]

	// 5. 確定後にのみキャッシュを書く。中断されたリクエストで部分書き込みをしない
	if ctx.Err() == nil {
		rest := make([]string, 0, len(ordered)-1)
		for _, idx := range ordered[1:] {
			rest = append(rest, candidates[idx].ContentID)
		}
		s.writeQueue(ctx, req.UserID, rest)
	}

	logger.Info("Next item selected",
		"content_id", chosen.ContentID,
		"tier", chosen.DifficultyTier,
		"target_tier", targetTier,
	)
	return &model.NextFeedResponse{
		Item: chosen,
		Context: model.FeedContext{
			TargetDifficultyTier: targetTier,
			LearningPathID:       chosen.LearningPathID,
		},
	}, nil
}

// targetTier はフィードバックと直前アイテムからターゲットティアを導きます
func (s *sequencerService) targetTier(current *model.Content, feedback model.Feedback) int {
	base := s.cfg.App.DefaultTier
	if current != nil {
		base = current.DifficultyTier
	}
	switch {
	case feedback.Easier():
		return s.clampTier(base - 1)
	case feedback.Harder():
		return s.clampTier(base + 1)
	default:
		return s.clampTier(base)
	}
}

// pathContinuationIndex は現在のアイテムと同じ学習パスで次の順番の候補を探します
func (s *sequencerService) pathContinuationIndex(current *model.Content, candidates []*model.Content) int {
	if current == nil || current.LearningPathID == nil || current.SequenceOrder == nil {
		return -1
	}
	wantOrder := *current.SequenceOrder + 1
	for i, c := range candidates {
		if c.LearningPathID == nil || c.SequenceOrder == nil {
			continue
		}
		if *c.LearningPathID == *current.LearningPathID && *c.SequenceOrder == wantOrder {
			return i
		}
	}
	return -1
}

// rankCandidates は重み付きスコアの降順で候補の添字を返します。同点は取得順を保ちます。
func (s *sequencerService) rankCandidates(candidates []*model.Content, targetTier int, current *model.Content, dueWords map[string]struct{}) []int {
	var targetPathID *string
	var nextSeq *int
	if current != nil {
		targetPathID = current.LearningPathID
		if current.SequenceOrder != nil {
			n := *current.SequenceOrder + 1
			nextSeq = &n
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for i, c := range candidates {
		score := s.scoreCandidate(c, targetTier, targetPathID, nextSeq, dueWords)
		if score <= minCandidateScore {
			continue
		}
		ranked = append(ranked, scored{idx: i, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	indices := make([]int, len(ranked))
	for i, r := range ranked {
		indices[i] = r.idx
	}
	return indices
}

func (s *sequencerService) scoreCandidate(c *model.Content, targetTier int, targetPathID *string, nextSeq *int, dueWords map[string]struct{}) float64 {
	// ターゲットティアからの距離 (3ティア離れたら0)
	delta := float64(c.DifficultyTier - targetTier)
	if delta < 0 {
		delta = -delta
	}
	difficultyScore := 1 - minFloat(1, delta/3)

	// 理解度バンド: 既知語率がバンド内なら最適。
	// 全語既知は学習価値が無いのでバンド外よりもさらに下位に置く
	var comprehensionScore float64
	switch {
	case c.KnownWordsPercentage >= 0.999:
		comprehensionScore = comprehensionAllKnown
	case c.KnownWordsPercentage >= s.cfg.App.BandMin && c.KnownWordsPercentage <= s.cfg.App.BandMax:
		comprehensionScore = 1
	default:
		comprehensionScore = comprehensionOutOfBand
	}

	pathScore := 0.6
	if c.LearningPathID != nil && targetPathID != nil && *c.LearningPathID == *targetPathID {
		pathScore = 1
	}

	sequenceScore := 0.6
	if nextSeq != nil && c.SequenceOrder != nil {
		d := float64(*c.SequenceOrder - *nextSeq)
		if d < 0 {
			d = -d
		}
		sequenceScore = 1 / (1 + d)
	}

	dueBoost := 0.0
	for _, w := range c.NewWords {
		if _, ok := dueWords[w]; ok {
			dueBoost = weightDueBoost
			break
		}
	}

	return difficultyScore*weightDifficulty +
		comprehensionScore*weightComprehension +
		pathScore*weightPath +
		sequenceScore*weightSequence +
		c.DopamineScore*weightDopamine +
		dueBoost
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func excludeIDList(exclude map[string]struct{}) []string {
	if len(exclude) == 0 {
		return nil
	}
	ids := make([]string, 0, len(exclude))
	for id := range exclude {
		ids = append(ids, id)
	}
	sort.Strings(ids) // クエリを決定的にする
	return ids
}

// --- キャッシュ連携。すべて短いタイムアウト付きで、失敗は非致命 ---

func (s *sequencerService) cacheCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Cache.OpTimeout)
}

// popCached はキュー先頭の未除外IDを取り出し、カタログ情報に解決します。
// キャッシュ障害時は nil を返して非キャッシュ経路に退避します。
func (s *sequencerService) popCached(ctx context.Context, userID string, exclude map[string]struct{}) *model.Content {
	logger := middleware.GetLogger(ctx)

	cctx, cancel := s.cacheCtx(ctx)
	defer cancel()

	id, ok, err := s.feedCache.PopQueue(cctx, userID, exclude)
	if err != nil {
		logger.Warn("Feed cache unavailable, falling back to uncached compute", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	item := s.lookupContent(ctx, id)
	if item == nil {
		// キューにあったが既にカタログから消えている。再計算させる
		logger.Warn("Cached content id no longer resolvable", "content_id", id)
		return nil
	}
	return item
}

// lookupContent はメタキャッシュ経由でコンテンツを解決します
func (s *sequencerService) lookupContent(ctx context.Context, contentID string) *model.Content {
	logger := middleware.GetLogger(ctx)

	cctx, cancel := s.cacheCtx(ctx)
	item, ok, err := s.feedCache.GetContentMeta(cctx, contentID)
	cancel()
	if err != nil {
		logger.Warn("Content meta cache read failed", "error", err, "content_id", contentID)
	} else if ok {
		return item
	}

	item, err = s.contentRepo.FindByID(ctx, s.db, contentID)
	if err != nil {
		logger.Warn("Content not found in catalog", "error", err, "content_id", contentID)
		return nil
	}

	cctx, cancel = s.cacheCtx(ctx)
	if err := s.feedCache.SetContentMeta(cctx, contentID, item, s.cfg.Cache.ContentTTL); err != nil {
		logger.Warn("Content meta cache write failed", "error", err, "content_id", contentID)
	}
	cancel()
	return item
}

// dueWordSet は復習対象の語のセットを返します。SRSキューのキャッシュで再計算を避けます。
// この信号は補助的なので、取得できない場合は空セットで続行します。
func (s *sequencerService) dueWordSet(ctx context.Context, userID string) map[string]struct{} {
	logger := middleware.GetLogger(ctx)

	cctx, cancel := s.cacheCtx(ctx)
	cached, ok, err := s.feedCache.GetSRSQueue(cctx, userID)
	cancel()
	if err != nil {
		logger.Warn("SRS queue cache read failed", "error", err)
	} else if ok {
		return wordSet(cached)
	}

	words, err := s.wordRepo.FindDueByUser(ctx, s.db, userID, time.Now())
	if err != nil {
		logger.Warn("Failed to load due words for boost signal", "error", err)
		return nil
	}

	list := make([]string, 0, len(words))
	for _, w := range words {
		list = append(list, w.Word)
	}

	cctx, cancel = s.cacheCtx(ctx)
	if err := s.feedCache.SetSRSQueue(cctx, userID, list, s.cfg.Cache.SRSTTL); err != nil {
		logger.Warn("SRS queue cache write failed", "error", err)
	}
	cancel()

	return wordSet(list)
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// writeQueue は選択確定後に残りのランキング済みIDをユーザーのキューとして書き込みます
func (s *sequencerService) writeQueue(ctx context.Context, userID string, ids []string) {
	logger := middleware.GetLogger(ctx)

	if len(ids) > s.cfg.App.QueueSize {
		ids = ids[:s.cfg.App.QueueSize]
	}

	cctx, cancel := s.cacheCtx(ctx)
	defer cancel()
	if err := s.feedCache.SetQueue(cctx, userID, ids, s.cfg.Cache.FeedTTL); err != nil {
		logger.Warn("Feed queue cache write failed", "error", err)
	}
}
