package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes the service-account bundle is used with.
var Scopes = []string{sheets.SpreadsheetsScope, sheets.DriveScope}

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// GoogleConfig describes how to reach the spreadsheet.
type GoogleConfig struct {
	SpreadsheetID   string
	SpreadsheetName string
	Credentials     []byte
	RetryMax        int
	Timeout         time.Duration
}

// GoogleStore implements Store on the Google Sheets API v4.
type GoogleStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewGoogleStore authenticates with the service-account bundle and resolves
// the spreadsheet, by title through Drive when no id is configured.
func NewGoogleStore(ctx context.Context, cfg GoogleConfig) (*GoogleStore, error) {
	jwtCfg, err := google.JWTConfigFromJSON(cfg.Credentials, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	base := newHTTPClient(cfg.RetryMax, cfg.Timeout)
	// Token refreshes outlive ctx, so they only inherit the transport
	authCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := jwtCfg.Client(authCtx)

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	id := cfg.SpreadsheetID
	if id == "" {
		driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("create drive service: %w", err)
		}
		id, err = findSpreadsheet(ctx, driveSvc, cfg.SpreadsheetName)
		if err != nil {
			return nil, err
		}
	}

	log.Info().Str("spreadsheet_id", id).Str("account", jwtCfg.Email).Msg("[Sheets] Connected")
	return NewGoogleStoreWithService(svc, id), nil
}

// NewGoogleStoreWithService wraps an existing Sheets service.
func NewGoogleStoreWithService(svc *sheets.Service, spreadsheetID string) *GoogleStore {
	return &GoogleStore{svc: svc, spreadsheetID: spreadsheetID}
}

func findSpreadsheet(ctx context.Context, svc *drive.Service, name string) (string, error) {
	if name == "" {
		return "", errors.New("neither spreadsheet id nor spreadsheet name is configured")
	}
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)

	list, err := svc.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(10).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(idempotent(ctx)).
		Do()
	if err != nil {
		return "", unavailable("find", name, err)
	}
	switch len(list.Files) {
	case 0:
		return "", fmt.Errorf("spreadsheet %q not shared with the service account", name)
	case 1:
		return list.Files[0].Id, nil
	default:
		return "", fmt.Errorf("%d spreadsheets named %q; configure sheets.spreadsheet_id", len(list.Files), name)
	}
}

// a1 quotes a worksheet title for use in an A1 range.
func a1(table string) string {
	return "'" + strings.ReplaceAll(table, "'", "''") + "'"
}

func toCells(values []string) [][]interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return [][]interface{}{row}
}

func (s *GoogleStore) rawValues(ctx context.Context, table string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, a1(table)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(idempotent(ctx)).
		Do()
	if err != nil {
		return nil, unavailable("read", table, err)
	}

	raw := make([][]string, len(resp.Values))
	for i, cells := range resp.Values {
		raw[i] = make([]string, len(cells))
		for c, v := range cells {
			raw[i][c] = fmt.Sprint(v)
		}
	}
	return raw, nil
}

func (s *GoogleStore) ReadAll(ctx context.Context, table string) (*Table, error) {
	raw, err := s.rawValues(ctx, table)
	if err != nil {
		return nil, err
	}
	return buildTable(table, raw), nil
}

func (s *GoogleStore) Append(ctx context.Context, table string, values []string) error {
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, a1(table)+"!A1", &sheets.ValueRange{Values: toCells(values)}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return unavailable("append", table, err)
	}
	return nil
}

// dataRows counts the rows currently below the header.
func (s *GoogleStore) dataRows(ctx context.Context, table string) (int, error) {
	raw, err := s.rawValues(ctx, table)
	if err != nil {
		return 0, err
	}
	if len(raw) <= HeaderRows {
		return 0, nil
	}
	return len(raw) - HeaderRows, nil
}

func (s *GoogleStore) UpdateAt(ctx context.Context, table string, index int, values []string) error {
	n, err := s.dataRows(ctx, table)
	if err != nil {
		return err
	}
	if err := checkIndex(table, index, n); err != nil {
		return err
	}

	rng := fmt.Sprintf("%s!A%d", a1(table), index)
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, &sheets.ValueRange{Values: toCells(values)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return unavailable("update", table, err)
	}
	return nil
}

func (s *GoogleStore) sheetID(ctx context.Context, table string) (int64, error) {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields(googleapi.Field("sheets(properties(sheetId,title))")).
		Context(idempotent(ctx)).
		Do()
	if err != nil {
		return 0, unavailable("lookup", table, err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == table {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, unavailable("lookup", table, errors.New("worksheet not found"))
}

func (s *GoogleStore) DeleteAt(ctx context.Context, table string, index int) error {
	n, err := s.dataRows(ctx, table)
	if err != nil {
		return err
	}
	if err := checkIndex(table, index, n); err != nil {
		return err
	}
	id, err := s.sheetID(ctx, table)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:         id,
					Dimension:       "ROWS",
					StartIndex:      int64(index - 1),
					EndIndex:        int64(index),
					ForceSendFields: []string{"SheetId"},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return unavailable("delete", table, err)
	}
	return nil
}

func (s *GoogleStore) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields(googleapi.Field("spreadsheetId")).
		Context(idempotent(ctx)).
		Do()
	if err != nil {
		return unavailable("ping", s.spreadsheetID, err)
	}
	return nil
}
