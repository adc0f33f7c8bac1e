package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/law-makers/legisinfo/pkg/models"
	"github.com/spf13/cobra"
)

func TestBillCommand_EndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		switch r.URL.Path {
		case "/legisinfo/en/bill/44-1/c-422/xml":
			w.Write([]byte(`<Bills><Bill>
				<NumberCode>C-422</NumberCode>
				<BillDocumentTypeName>Private Member's Bill</BillDocumentTypeName>
				<SponsorPersonId>105837</SponsorPersonId>
				<SponsorPersonOfficialFirstName>Bonita</SponsorPersonOfficialFirstName>
				<SponsorPersonOfficialLastName>Zarrillo</SponsorPersonOfficialLastName>
			</Bill></Bills>`))
		case "/members/en/bonita-zarrillo(105837)/xml":
			w.Write([]byte(`<Profile><MemberOfParliamentRole><CaucusShortName>NDP</CaucusShortName></MemberOfParliamentRole></Profile>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	t.Setenv("LEGISINFO_MEMBERS_BASE_URL", upstream.URL+"/members/en")
	t.Setenv("LEGISINFO_BILL_URL_PREFIX", upstream.URL+"/legisinfo/en/bill/")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"bill", upstream.URL + "/legisinfo/en/bill/44-1/c-422"})
	defer rootCmd.SetArgs(nil)

	if code := Execute(context.Background()); code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out.String(), err)
	}
	if got["bill_number"] != "c-422" || got["sponsor_party"] != "NDP" || got["status"] != "Unknown" {
		t.Errorf("Unexpected record: %v", got)
	}
}

func TestRenderHelp(t *testing.T) {
	var buf bytes.Buffer
	renderHelp(&buf, rootCmd, true)

	out := buf.String()
	for _, want := range []string{"LEGISINFO", "serve", "bill", "inspect", "--user-agent"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected help to mention %q", want)
		}
	}
}

func TestPrintFlags_Continuation(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("alpha", "", "first line")
	cmd.Flags().Bool("beta", false, "second")

	var buf bytes.Buffer
	printFlags(&buf, cmd.Flags().FlagUsages()+"\n      continued text\n")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 flag lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "second continued text") {
		t.Errorf("Expected continuation folded into the last flag, got %q", lines[1])
	}
}

func TestGetApp_Unset(t *testing.T) {
	if GetApp(&cobra.Command{}) != nil {
		t.Error("Expected no application on a fresh command")
	}
	if GetApp(nil) != nil {
		t.Error("Expected nil for nil command")
	}
}

type fetcherFunc func(ctx context.Context, url string) (*models.Document, error)

func (fn fetcherFunc) Fetch(ctx context.Context, url string) (*models.Document, error) {
	return fn(ctx, url)
}

func TestFetchRenditions_KeepsOrder(t *testing.T) {
	f := fetcherFunc(func(ctx context.Context, url string) (*models.Document, error) {
		if strings.HasSuffix(url, "/json") {
			return nil, errors.New("HTTP 404: 404 Not Found")
		}
		return &models.Document{URL: url, ContentType: "application/xml"}, nil
	})

	got := fetchRenditions(context.Background(), f, []string{"https://a/xml", "https://a/json"})
	if len(got) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(got))
	}
	if got[0].url != "https://a/xml" || got[0].contentType != "application/xml" || got[0].err != nil {
		t.Errorf("Unexpected first result: %+v", got[0])
	}
	if got[1].url != "https://a/json" || got[1].err == nil {
		t.Errorf("Expected second result to fail, got %+v", got[1])
	}
}
