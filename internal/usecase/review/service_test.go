package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
)

type mockSearcher struct {
	results   []domain.BlogResult
	err       error
	lastQuery string
}

func (m *mockSearcher) SearchBlog(
	_ context.Context, query string, _ int,
) ([]domain.BlogResult, error) {
	m.lastQuery = query
	return m.results, m.err
}

func snippets(descriptions ...string) []domain.BlogResult {
	out := make([]domain.BlogResult, len(descriptions))
	for i, d := range descriptions {
		out[i] = domain.BlogResult{Description: d}
	}
	return out
}

func TestCollect_QueryIncludesVenueAndSuffix(t *testing.T) {
	searcher := &mockSearcher{}
	svc := New(searcher, zap.NewNop())

	svc.Collect(context.Background(), "연남 파스타", "서울 마포구 길 1")
	if searcher.lastQuery != "연남 파스타 서울 마포구 길 1 맛집 후기" {
		t.Errorf("unexpected query %q", searcher.lastQuery)
	}
}

func TestCollect_FiltersSponsoredSnippets(t *testing.T) {
	// 10 snippets, 3 sponsored: removed_count must be 3 and the joined
	// context must be built from the 7 survivors only, in order.
	searcher := &mockSearcher{results: snippets(
		"첫번째 정직한 후기",
		"sponsored post about the place",
		"두번째 정직한 후기",
		"업체에서 제공받아 작성했습니다",
		"세번째 정직한 후기",
		"네번째 정직한 후기",
		"협찬을 받았어요",
		"다섯번째 정직한 후기",
		"여섯번째 정직한 후기",
		"일곱번째 정직한 후기",
	)}
	svc := New(searcher, zap.NewNop())

	bundle := svc.Collect(context.Background(), "국밥집", "서울")

	if bundle.TotalCount != 10 {
		t.Errorf("expected TotalCount=10, got %d", bundle.TotalCount)
	}
	if bundle.RemovedCount != 3 {
		t.Errorf("expected RemovedCount=3, got %d", bundle.RemovedCount)
	}
	if bundle.KeptCount() != 7 {
		t.Errorf("expected KeptCount=7, got %d", bundle.KeptCount())
	}
	for _, kw := range DefaultAdKeywords {
		if strings.Contains(bundle.Context, kw) {
			t.Errorf("joined context still contains ad keyword %q", kw)
		}
	}
	if !strings.HasPrefix(bundle.Context, "첫번째 정직한 후기 두번째 정직한 후기") {
		t.Errorf("survivors not joined in provider order: %q", bundle.Context)
	}
}

func TestCollect_CountInvariantHolds(t *testing.T) {
	cases := [][]domain.BlogResult{
		nil,
		snippets("광고 글"),
		snippets("정직한 후기"),
		snippets("정직한 후기", "협찬 글", "홍보 글"),
	}
	svc := New(&mockSearcher{}, zap.NewNop())

	for _, results := range cases {
		searcher := &mockSearcher{results: results}
		svc = New(searcher, zap.NewNop())
		bundle := svc.Collect(context.Background(), "가게", "주소")
		if bundle.RemovedCount+bundle.KeptCount() != bundle.TotalCount {
			t.Errorf("invariant violated: removed=%d kept=%d total=%d",
				bundle.RemovedCount, bundle.KeptCount(), bundle.TotalCount)
		}
	}
}

func TestCollect_StripsHTMLBeforeMatching(t *testing.T) {
	// The keyword is split by markup in the raw description; matching
	// must run on the cleaned text.
	searcher := &mockSearcher{results: snippets("<b>협</b>찬 받은 글")}
	svc := New(searcher, zap.NewNop())

	bundle := svc.Collect(context.Background(), "가게", "주소")
	if bundle.RemovedCount != 1 {
		t.Errorf("expected snippet dropped after HTML strip, got removed=%d", bundle.RemovedCount)
	}
}

func TestCollect_ProviderFailureReturnsEmptyBundle(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("timeout")}
	svc := New(searcher, zap.NewNop())

	bundle := svc.Collect(context.Background(), "가게", "주소")
	if bundle.Context != "" || bundle.TotalCount != 0 || bundle.RemovedCount != 0 {
		t.Errorf("expected empty bundle, got %+v", bundle)
	}
}

func TestCollect_ExtraAdKeywords(t *testing.T) {
	searcher := &mockSearcher{results: snippets("이벤트 당첨 후기", "그냥 후기")}
	svc := New(searcher, zap.NewNop()).WithExtraAdKeywords("이벤트 당첨")

	bundle := svc.Collect(context.Background(), "가게", "주소")
	if bundle.RemovedCount != 1 {
		t.Errorf("expected extra keyword to drop one snippet, got %d", bundle.RemovedCount)
	}
	if bundle.Context != "그냥 후기" {
		t.Errorf("unexpected context %q", bundle.Context)
	}
}
