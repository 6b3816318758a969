package tests

import (
	"net/url"
	"testing"
	"time"

	"github.com/bobmcallan/invest-portal/tests/common"
	"github.com/chromedp/chromedp"
)

func TestNavLinksReachEachList(t *testing.T) {
	base := common.RequirePortal(t)

	links := []struct {
		selector string
		path     string
	}{
		{`.nav-links a[href="/sp500"]`, "/sp500"},
		{`.nav-links a[href="/nasdaq100"]`, "/nasdaq100"},
		{`.nav-links a[href="/etfs"]`, "/etfs"},
	}

	for _, l := range links {
		t.Run(l.path, func(t *testing.T) {
			ctx, cancel := common.NewBrowserContext(nil)
			defer cancel()

			if err := common.NavigateAndWait(ctx, base+"/", 0); err != nil {
				t.Fatal(err)
			}
			err := chromedp.Run(ctx,
				chromedp.Click(l.selector, chromedp.ByQuery),
				chromedp.WaitVisible(".page-title", chromedp.ByQuery),
			)
			if err != nil {
				t.Fatal(err)
			}

			loc, err := common.Location(ctx)
			if err != nil {
				t.Fatal(err)
			}
			u, _ := url.Parse(loc)
			if u.Path != l.path {
				t.Errorf("path = %s, want %s", u.Path, l.path)
			}

			active, err := common.Exists(ctx, l.selector+".active")
			if err != nil {
				t.Fatal(err)
			}
			if !active {
				t.Errorf("expected %s to be marked active", l.selector)
			}
		})
	}
}

func TestNavSearchFormSubmits(t *testing.T) {
	base := common.RequirePortal(t)
	ctx, cancel := common.NewBrowserContext(nil)
	defer cancel()

	if err := common.NavigateAndWait(ctx, base+"/", 0); err != nil {
		t.Fatal(err)
	}
	err := chromedp.Run(ctx,
		chromedp.SendKeys(".nav-search .search-input", "nvda", chromedp.ByQuery),
		chromedp.Submit(".nav-search", chromedp.ByQuery),
		chromedp.WaitVisible(".page-title", chromedp.ByQuery),
	)
	if err != nil {
		t.Fatal(err)
	}

	loc, _ := common.Location(ctx)
	u, _ := url.Parse(loc)
	if u.Path != "/search" || u.Query().Get("q") != "nvda" {
		t.Errorf("location = %s, want /search?q=nvda", loc)
	}
}

func TestNavSortChangeResetsPage(t *testing.T) {
	base := common.RequirePortal(t)
	ctx, cancel := common.NewBrowserContext(nil)
	defer cancel()

	if err := common.NavigateAndWait(ctx, base+"/sp500?page=2", 0); err != nil {
		t.Fatal(err)
	}
	err := chromedp.Run(ctx,
		chromedp.SetValue("#sort", "name_asc", chromedp.ByID),
		chromedp.Evaluate(`document.getElementById('sort').dispatchEvent(new Event('change'))`, nil),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.WaitVisible(".page-title", chromedp.ByQuery),
	)
	if err != nil {
		t.Fatal(err)
	}

	loc, _ := common.Location(ctx)
	u, _ := url.Parse(loc)
	if got := u.Query().Get("sort"); got != "name_asc" {
		t.Errorf("sort = %q, want name_asc", got)
	}
	if got := u.Query().Get("page"); got != "" && got != "1" {
		t.Errorf("page = %q, want reset to 1", got)
	}
}

func TestNavNasdaqViewToggle(t *testing.T) {
	base := common.RequirePortal(t)
	ctx, cancel := common.NewBrowserContext(nil)
	defer cancel()

	if err := common.NavigateAndWait(ctx, base+"/nasdaq100", 0); err != nil {
		t.Fatal(err)
	}
	if err := chromedp.Run(ctx,
		chromedp.Click(`.view-toggle a[href*="view=card"]`, chromedp.ByQuery),
		chromedp.WaitVisible(".list-cards", chromedp.ByQuery),
	); err != nil {
		t.Fatal(err)
	}

	common.TakeScreenshot(t, ctx, "nav", "nasdaq100-cards.png")

	ok, got, err := common.TextContains(ctx, ".total", "Total:")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("total label = %q", got)
	}

	toggle, err := common.Exists(ctx, ".view-toggle")
	if err != nil {
		t.Fatal(err)
	}
	if !toggle {
		t.Error("expected the view toggle on the Nasdaq 100 page")
	}
}

func TestNavSP500HasNoViewToggle(t *testing.T) {
	base := common.RequirePortal(t)
	ctx, cancel := common.NewBrowserContext(nil)
	defer cancel()

	if err := common.NavigateAndWait(ctx, base+"/sp500?view=card", 0); err != nil {
		t.Fatal(err)
	}

	toggle, err := common.Exists(ctx, ".view-toggle")
	if err != nil {
		t.Fatal(err)
	}
	if toggle {
		t.Error("expected no view toggle on the S&P 500 page")
	}
	cards, err := common.Exists(ctx, ".list-cards")
	if err != nil {
		t.Fatal(err)
	}
	if cards {
		t.Error("expected S&P 500 to ignore view=card")
	}
}
