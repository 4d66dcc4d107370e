package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type fakeSheetsAPI struct {
	values   [][]interface{}
	batch    *sheets.BatchUpdateSpreadsheetRequest
	appended *sheets.ValueRange
	failing  bool
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if f.failing {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		f.batch = &sheets.BatchUpdateSpreadsheetRequest{}
		json.NewDecoder(r.Body).Decode(f.batch)
		w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	case strings.HasSuffix(r.URL.Path, ":append"):
		f.appended = &sheets.ValueRange{}
		json.NewDecoder(r.Body).Decode(f.appended)
		w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	case strings.Contains(r.URL.Path, "/values/"):
		json.NewEncoder(w).Encode(map[string]interface{}{"range": "Patient!A1:I3", "values": f.values})
	default:
		w.Write([]byte(`{"spreadsheetId":"sheet-1","sheets":[{"properties":{"sheetId":0,"title":"Visitors"}},{"properties":{"sheetId":7,"title":"Patient"}}]}`))
	}
}

func newFakeStore(t *testing.T, api *fakeSheetsAPI) *GoogleStore {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return NewGoogleStoreWithService(svc, "sheet-1")
}

func patientValues() [][]interface{} {
	return [][]interface{}{
		{"Timestamp", "Bed", "Code", "Name", "Age", "Gender", "Ward", "Diagnosis", "Complaint"},
		{"2024-01-01 10:00:00", "B1", "C1", "Alice", "40", "Female", "W1", "Flu", "Cough"},
		{"2024-01-01 11:00:00", "B2", "C2", "Bob", "50", "Male", "W2", "Fever", "Headache"},
	}
}

func TestGoogleStoreReadAll(t *testing.T) {
	store := newFakeStore(t, &fakeSheetsAPI{values: patientValues()})

	tbl, err := store.ReadAll(context.Background(), TablePatient)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if tbl.Len() != 2 || tbl.Rows[1]["Name"] != "Bob" {
		t.Errorf("unexpected table %+v", tbl)
	}
}

func TestGoogleStoreDeleteAtTargetsWorksheetRow(t *testing.T) {
	api := &fakeSheetsAPI{values: patientValues()}
	store := newFakeStore(t, api)

	if err := store.DeleteAt(context.Background(), TablePatient, 3); err != nil {
		t.Fatalf("DeleteAt: %v", err)
	}
	if api.batch == nil || len(api.batch.Requests) != 1 {
		t.Fatalf("expected one batch request, got %+v", api.batch)
	}
	rng := api.batch.Requests[0].DeleteDimension.Range
	if rng.SheetId != 7 || rng.StartIndex != 2 || rng.EndIndex != 3 || rng.Dimension != "ROWS" {
		t.Errorf("unexpected range %+v", rng)
	}
}

func TestGoogleStoreDeleteAtRejectsOutOfRange(t *testing.T) {
	api := &fakeSheetsAPI{values: patientValues()}
	store := newFakeStore(t, api)

	if err := store.DeleteAt(context.Background(), TablePatient, 4); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if api.batch != nil {
		t.Error("no mutation should be sent for an invalid index")
	}
}

func TestGoogleStoreAppendSendsRawValues(t *testing.T) {
	api := &fakeSheetsAPI{values: patientValues()}
	store := newFakeStore(t, api)

	if err := store.Append(context.Background(), TableVisitors, []string{"09:00:00", "2024-01-01", "V1", "A", "3", "IN"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if api.appended == nil || len(api.appended.Values) != 1 || api.appended.Values[0][2] != "V1" {
		t.Errorf("unexpected append body %+v", api.appended)
	}
}

func TestGoogleStoreMapsAPIErrors(t *testing.T) {
	store := newFakeStore(t, &fakeSheetsAPI{failing: true})

	if _, err := store.ReadAll(context.Background(), TablePatient); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	if err := store.Ping(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable from Ping, got %v", err)
	}
}

func TestA1QuotesWorksheetTitles(t *testing.T) {
	if got := a1(TablePreviousPatient); got != "'Previous Patient'" {
		t.Errorf("got %s", got)
	}
	if got := a1("Bob's"); got != "'Bob''s'" {
		t.Errorf("got %s", got)
	}
}

func TestTransportRetriesOnlyReads(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newHTTPClient(2, 5*time.Second)

	t.Run("read is retried", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		req, _ := http.NewRequestWithContext(idempotent(context.Background()), http.MethodGet, srv.URL, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || atomic.LoadInt32(&calls) != 2 {
			t.Errorf("expected a retry to succeed, status %d after %d calls", resp.StatusCode, calls)
		}
	})

	t.Run("write is not retried", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL, strings.NewReader("{}"))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable || atomic.LoadInt32(&calls) != 1 {
			t.Errorf("expected single failed attempt, status %d after %d calls", resp.StatusCode, calls)
		}
	})
}
