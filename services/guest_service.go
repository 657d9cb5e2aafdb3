package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "hotelpms/errors"
	"hotelpms/models"
	"hotelpms/store"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// minNameSimilarity ngưỡng tương đồng tối thiểu khi tìm khách theo tên
const minNameSimilarity = 0.6

// ScoredGuest khách kèm điểm tương đồng với từ khóa
type ScoredGuest struct {
	models.Guest
	Score float64 `json:"score"`
}

// GuestService tra cứu và xóa khách
type GuestService struct {
	store store.Store
}

func NewGuestService(st store.Store) *GuestService {
	return &GuestService{store: st}
}

func (s *GuestService) ListGuests(ctx context.Context) ([]models.Guest, error) {
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list guests", err)
	}
	return guests, nil
}

func (s *GuestService) GetGuest(ctx context.Context, id uint) (*models.Guest, error) {
	guest, err := s.store.GetGuest(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("guest %d not found", id))
		}
		return nil, apperrors.NewInternalError("failed to load guest", err)
	}
	return guest, nil
}

// DeleteGuest xóa mềm, email/phone được giải phóng cho khách mới
func (s *GuestService) DeleteGuest(ctx context.Context, id uint) error {
	if err := s.store.DeleteGuest(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("guest %d not found", id))
		}
		return apperrors.NewInternalError("failed to delete guest", err)
	}
	return nil
}

// SearchGuests tìm khách theo tên, không phân biệt dấu và hoa thường
func (s *GuestService) SearchGuests(ctx context.Context, query string) ([]ScoredGuest, error) {
	q := normalizeInput(query)
	if q == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "q is required", nil)
	}

	guests, err := s.ListGuests(ctx)
	if err != nil {
		return nil, err
	}
	if len(guests) == 0 {
		return []ScoredGuest{}, nil
	}

	names := make([]string, 0, len(guests))
	seen := map[string]bool{}
	for _, g := range guests {
		name := normalizeInput(g.FullName())
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	matcher := closestmatch.New(names, []int{2, 3})
	closest := matcher.Closest(q)

	results := make([]ScoredGuest, 0)
	for _, g := range guests {
		name := normalizeInput(g.FullName())
		score := nameScore(q, name)
		if name == closest && score < minNameSimilarity {
			score = minNameSimilarity
		}
		if score >= minNameSimilarity {
			results = append(results, ScoredGuest{Guest: g, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// nameScore so với cả tên đầy đủ lẫn từng từ trong tên
func nameScore(query, name string) float64 {
	best := calculateSimilarity(query, name)
	if strings.Contains(name, query) {
		best = 1.0
	}
	for _, part := range strings.Fields(name) {
		if sim := calculateSimilarity(query, part); sim > best {
			best = sim
		}
	}
	return best
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
