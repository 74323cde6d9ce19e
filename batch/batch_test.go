package batch

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/surejsai/GenericProductFluxer/extractor"
	"github.com/surejsai/GenericProductFluxer/models"
)

// fakeExtractor succeeds for every link not listed in fail.
type fakeExtractor struct {
	fail map[string]string // link -> extraction method

	mu    sync.Mutex
	seen  []string
	inFly atomic.Int32
	peak  atomic.Int32
	delay time.Duration
}

func (f *fakeExtractor) Extract(_ context.Context, input string, _ extractor.ExtractOptions) *models.ProductDescriptionRecord {
	n := f.inFly.Add(1)
	defer f.inFly.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	f.seen = append(f.seen, input)
	f.mu.Unlock()

	if method, bad := f.fail[input]; bad {
		return &models.ProductDescriptionRecord{URL: input, ExtractionMethod: method}
	}
	return &models.ProductDescriptionRecord{
		URL:                input,
		ProductDescription: "description of " + input,
		ExtractionMethod:   models.MethodJSONLD,
		ConfidenceScore:    0.95,
	}
}

func products(n int) []models.BatchProduct {
	out := make([]models.BatchProduct, n)
	for i := range out {
		out[i] = models.BatchProduct{Title: fmt.Sprintf("P%d", i), Link: fmt.Sprintf("https://shop.example/%d", i)}
	}
	return out
}

func indexes(items []models.BatchItem) []int {
	out := []int{}
	for _, it := range items {
		out = append(out, it.Index)
	}
	return out
}

func TestRun_AllPrimariesSucceed(t *testing.T) {
	ex := &fakeExtractor{}
	res := Run(context.Background(), ex, products(8), 5, 3)

	if got := indexes(res.Succeeded); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("succeeded = %v", got)
	}
	if len(res.Failed) != 0 || len(res.BackupsUsed) != 0 {
		t.Errorf("unexpected failures %v or backups %v", res.Failed, res.BackupsUsed)
	}
	if len(ex.seen) != 5 {
		t.Errorf("backups should not be touched, extracted %d products", len(ex.seen))
	}
	if res.Status(5) != "completed" {
		t.Errorf("status = %q", res.Status(5))
	}
}

func TestRun_BackupsReplaceFailures(t *testing.T) {
	ex := &fakeExtractor{fail: map[string]string{
		"https://shop.example/1": models.MethodBlocked,
		"https://shop.example/3": "",
		"https://shop.example/5": models.MethodFetchFail,
	}}
	res := Run(context.Background(), ex, products(10), 5, 5)

	if got := indexes(res.Succeeded); !reflect.DeepEqual(got, []int{0, 2, 4, 6, 7}) {
		t.Errorf("succeeded = %v, want [0 2 4 6 7]", got)
	}
	if got := indexes(res.Failed); !reflect.DeepEqual(got, []int{1, 3, 5}) {
		t.Errorf("failed = %v, want [1 3 5]", got)
	}
	if !reflect.DeepEqual(res.BackupsUsed, []int{6, 7}) {
		t.Errorf("backups used = %v, want [6 7]", res.BackupsUsed)
	}
	if len(ex.seen) != 8 {
		t.Errorf("extracted %d products, want 8", len(ex.seen))
	}

	reasons := map[int]string{}
	for _, it := range res.Failed {
		reasons[it.Index] = it.Error
	}
	if reasons[1] != "page blocked by an anti-bot challenge" || reasons[5] != "page could not be fetched" {
		t.Errorf("failure reasons = %v", reasons)
	}
	for _, it := range res.Succeeded {
		if it.IsBackup != (it.Index >= 5) {
			t.Errorf("item %d is_backup = %v", it.Index, it.IsBackup)
		}
	}
}

func TestRun_BackupsExhausted(t *testing.T) {
	fail := map[string]string{}
	for i := 0; i < 7; i++ {
		fail[fmt.Sprintf("https://shop.example/%d", i)] = ""
	}
	res := Run(context.Background(), &fakeExtractor{fail: fail}, products(7), 5, 2)

	if len(res.Succeeded) != 0 || len(res.Failed) != 7 {
		t.Errorf("succeeded %d failed %d, want 0/7", len(res.Succeeded), len(res.Failed))
	}
	if res.Status(5) != "failed" {
		t.Errorf("status = %q, want failed", res.Status(5))
	}
}

func TestRun_SkipsProductsWithoutLink(t *testing.T) {
	in := []models.BatchProduct{
		{Title: "no link"},
		{Title: "a", Link: " https://shop.example/a "},
		{Title: "blank", Link: "   "},
		{Title: "b", Link: "https://shop.example/b"},
	}
	ex := &fakeExtractor{}
	res := Run(context.Background(), ex, in, 5, 0)

	if len(res.Succeeded) != 2 {
		t.Fatalf("succeeded = %d, want 2", len(res.Succeeded))
	}
	if res.Succeeded[0].Title != "a" || res.Succeeded[0].Record.URL != "https://shop.example/a" {
		t.Errorf("first item = %+v", res.Succeeded[0])
	}
	if res.Status(5) != "partial" {
		t.Errorf("status = %q, want partial", res.Status(5))
	}
}

func TestRun_ConcurrencyLimit(t *testing.T) {
	ex := &fakeExtractor{delay: 20 * time.Millisecond}
	Run(context.Background(), ex, products(6), 6, 2)

	if peak := ex.peak.Load(); peak > 2 {
		t.Errorf("peak in-flight extractions = %d, want <= 2", peak)
	}
}

func TestRun_CancelledStopsBackups(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fail := map[string]string{"https://shop.example/0": ""}
	ex := &fakeExtractor{fail: fail}
	res := Run(ctx, ex, products(4), 1, 1)

	if len(ex.seen) != 1 || len(res.BackupsUsed) != 0 {
		t.Errorf("cancelled batch tried backups: seen %v", ex.seen)
	}
}
