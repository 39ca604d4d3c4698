package recommend

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
)

type mockPlaces struct {
	venues    []domain.CandidateVenue
	lastQuery string
}

func (m *mockPlaces) Search(_ context.Context, query string) []domain.CandidateVenue {
	m.lastQuery = query
	return m.venues
}

type mockReviews struct {
	bundles map[string]domain.ReviewBundle
	calls   int
}

func (m *mockReviews) Collect(_ context.Context, name, _ string) domain.ReviewBundle {
	m.calls++
	return m.bundles[name]
}

type mockSummaries struct {
	calls int
}

func (m *mockSummaries) Summarize(
	_ context.Context, name, reviewContext string, _ domain.Language,
) domain.Summary {
	m.calls++
	if reviewContext == "" {
		return domain.Summary{Overview: "정보가 부족합니다.", Pros: []string{}, Cons: []string{}}
	}
	return domain.Summary{
		Overview: name + " 요약",
		Pros:     []string{"맛"},
		Cons:     []string{"웨이팅"},
	}
}

type mockTranslator struct {
	optimized      string
	optimizeCalls  int
	translateCalls int
}

func (m *mockTranslator) OptimizeKeywords(_ context.Context, prompt string, _ domain.Language) string {
	m.optimizeCalls++
	if m.optimized != "" {
		return m.optimized
	}
	return prompt
}

func (m *mockTranslator) TranslateDisplay(
	_ context.Context, name, address string, _ domain.Language,
) (string, string) {
	m.translateCalls++
	return "T:" + name, "T:" + address
}

func venue(name string) domain.CandidateVenue {
	return domain.CandidateVenue{Name: name, Address: name + " 주소", MapX: "127", MapY: "37"}
}

func newService(p *mockPlaces, r *mockReviews, s *mockSummaries, t *mockTranslator) *Service {
	return New(p, r, s, t, zap.NewNop())
}

func TestRecommend_EnrichesUpToThreeVenues(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{
		venue("A"), venue("B"), venue("C"), venue("D"), venue("E"),
	}}
	reviews := &mockReviews{bundles: map[string]domain.ReviewBundle{
		"A": {Context: "후기 모음", TotalCount: 10, RemovedCount: 3},
		"B": {Context: "후기", TotalCount: 5, RemovedCount: 0},
	}}
	sums := &mockSummaries{}
	svc := newService(places, reviews, sums, &mockTranslator{})

	res := svc.Recommend(context.Background(), "강남 맛집", domain.LanguageKorean)

	if len(res.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(res.Items))
	}
	if res.Items[0].Name != "A" || res.Items[2].Name != "C" {
		t.Errorf("items must keep provider rank order, got %v", res.Items)
	}
	if res.Items[0].FilteredAdCount != 3 {
		t.Errorf("expected filtered count 3, got %d", res.Items[0].FilteredAdCount)
	}
	for _, it := range res.Items {
		if !it.AdFiltered {
			t.Errorf("item %q must be marked ad-filtered", it.Name)
		}
		if it.Summary.Overview == "" {
			t.Errorf("item %q has empty summary", it.Name)
		}
	}
	if !strings.Contains(res.Answer, "강남 맛집") {
		t.Errorf("answer must mention the query, got %q", res.Answer)
	}
	if reviews.calls != 3 || sums.calls != 3 {
		t.Errorf("expected 3 review/summary calls, got %d/%d", reviews.calls, sums.calls)
	}
}

func TestRecommend_NoCandidatesShortCircuits(t *testing.T) {
	places := &mockPlaces{}
	reviews := &mockReviews{}
	sums := &mockSummaries{}
	svc := newService(places, reviews, sums, &mockTranslator{})

	res := svc.Recommend(context.Background(), "없는 동네", domain.LanguageKorean)

	if len(res.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(res.Items))
	}
	if res.Answer != "검색 결과가 없습니다." {
		t.Errorf("unexpected answer %q", res.Answer)
	}
	if reviews.calls != 0 || sums.calls != 0 {
		t.Error("enrichment must not run when there are no candidates")
	}
}

func TestRecommend_FewerCandidatesThanMax(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{venue("A")}}
	svc := newService(places, &mockReviews{}, &mockSummaries{}, &mockTranslator{})

	res := svc.Recommend(context.Background(), "외진 동네 맛집", domain.LanguageKorean)
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
}

func TestRecommend_KeywordStageRewritesQuery(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{venue("A")}}
	translator := &mockTranslator{optimized: "강남역 맛집"}
	svc := newService(places, &mockReviews{}, &mockSummaries{}, translator)

	res := svc.Recommend(context.Background(), "restaurants near Gangnam", domain.LanguageEnglish)

	if places.lastQuery != "강남역 맛집" {
		t.Errorf("search must use the optimized query, got %q", places.lastQuery)
	}
	if !strings.Contains(res.Answer, "restaurants near Gangnam") {
		t.Errorf("answer must quote the original prompt, got %q", res.Answer)
	}
	if strings.Contains(res.Answer, "강남역 맛집") {
		t.Errorf("answer must not leak the rewritten query, got %q", res.Answer)
	}
}

func TestRecommend_KeywordStageDisabled(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{venue("A")}}
	translator := &mockTranslator{optimized: "should not be used"}
	svc := newService(places, &mockReviews{}, &mockSummaries{}, translator).
		WithKeywordOptimization(false)

	svc.Recommend(context.Background(), "restaurants near Gangnam", domain.LanguageEnglish)

	if translator.optimizeCalls != 0 {
		t.Error("keyword optimization must not run when disabled")
	}
	if places.lastQuery != "restaurants near Gangnam" {
		t.Errorf("search must use the raw prompt, got %q", places.lastQuery)
	}
}

func TestRecommend_TranslatesDisplayForNonNative(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{venue("국밥집")}}
	translator := &mockTranslator{}
	svc := newService(places, &mockReviews{}, &mockSummaries{}, translator)

	res := svc.Recommend(context.Background(), "gukbap", domain.LanguageEnglish)

	if res.Items[0].Name != "국밥집 (T:국밥집)" {
		t.Errorf("expected bilingual composite name, got %q", res.Items[0].Name)
	}
	if res.Items[0].Address != "T:국밥집 주소" {
		t.Errorf("expected translated address, got %q", res.Items[0].Address)
	}
	if got := res.Items[0].Keywords; len(got) != 2 || got[0] != "restaurant" {
		t.Errorf("unexpected keywords %v", got)
	}
}

func TestRecommend_NativeLanguageSkipsTranslation(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{venue("국밥집")}}
	translator := &mockTranslator{}
	svc := newService(places, &mockReviews{}, &mockSummaries{}, translator)

	res := svc.Recommend(context.Background(), "국밥", domain.LanguageKorean)

	if translator.translateCalls != 0 {
		t.Error("display translation must not run for the native language")
	}
	if res.Items[0].Name != "국밥집" {
		t.Errorf("expected native name, got %q", res.Items[0].Name)
	}
	if got := res.Items[0].Keywords; len(got) != 2 || got[0] != "맛집" {
		t.Errorf("unexpected keywords %v", got)
	}
}

func TestRecommend_TranslationStageDisabled(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{venue("국밥집")}}
	translator := &mockTranslator{}
	svc := newService(places, &mockReviews{}, &mockSummaries{}, translator).
		WithDisplayTranslation(false)

	res := svc.Recommend(context.Background(), "gukbap", domain.LanguageEnglish)

	if translator.translateCalls != 0 {
		t.Error("display translation must not run when disabled")
	}
	if res.Items[0].Name != "국밥집" {
		t.Errorf("expected native name, got %q", res.Items[0].Name)
	}
}

func TestRecommend_EmptyReviewBundleStillYieldsItem(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{venue("신규집")}}
	svc := newService(places, &mockReviews{}, &mockSummaries{}, &mockTranslator{})

	res := svc.Recommend(context.Background(), "신규집", domain.LanguageKorean)

	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
	it := res.Items[0]
	if it.FilteredAdCount != 0 {
		t.Errorf("expected zero filtered count, got %d", it.FilteredAdCount)
	}
	if it.Summary.Overview != "정보가 부족합니다." {
		t.Errorf("expected insufficient-review summary, got %q", it.Summary.Overview)
	}
}

func TestRecommend_WithMaxPlaces(t *testing.T) {
	places := &mockPlaces{venues: []domain.CandidateVenue{venue("A"), venue("B"), venue("C")}}
	svc := newService(places, &mockReviews{}, &mockSummaries{}, &mockTranslator{}).WithMaxPlaces(1)

	res := svc.Recommend(context.Background(), "맛집", domain.LanguageKorean)
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
}
