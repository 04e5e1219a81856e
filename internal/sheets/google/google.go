// Package google is the Google Sheets adapter: service-account auth
// from environment, plan reads and ledger mirroring.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finanzas/internal/core"
	"finanzas/internal/log"
	ports "finanzas/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	planSheet     string
	ledgerSheet   string
	logger        *log.Logger
}

var (
	_ ports.LedgerWriter  = (*Client)(nil)
	_ ports.LedgerDeleter = (*Client)(nil)
	_ ports.PlanReader    = (*Client)(nil)
)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional sheet names: GOOGLE_PLAN_SHEET_NAME (default "Plan"),
// GOOGLE_LEDGER_SHEET_NAME (default "Movimientos").
func NewFromEnv(ctx context.Context, logger *log.Logger) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	planSheet := strings.TrimSpace(os.Getenv("GOOGLE_PLAN_SHEET_NAME"))
	if planSheet == "" {
		planSheet = "Plan"
	}
	ledgerSheet := strings.TrimSpace(os.Getenv("GOOGLE_LEDGER_SHEET_NAME"))
	if ledgerSheet == "" {
		ledgerSheet = "Movimientos"
	}

	logger = logger.WithComponent(log.ComponentSheets)

	svc, err := newSheetsService(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		planSheet:     planSheet,
		ledgerSheet:   ledgerSheet,
		logger:        logger,
	}, nil
}

// newSheetsService resolves service account credentials from the
// environment: inline JSON first, then a file path, then the standard
// GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context, logger *log.Logger) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		logger.InfoContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		logger.InfoContext(ctx, "Reading credentials from file", "path", serviceAccountFile)
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// ReadPlan fetches the plan sheet's value matrix and extracts the patch
// for the given month.
func (c *Client) ReadPlan(ctx context.Context, year, month int) (ports.PlanPatch, error) {
	if c.svc == nil {
		return ports.PlanPatch{}, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A1:Z100", c.planSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return ports.PlanPatch{}, fmt.Errorf("read %s: %w", rng, err)
	}

	patch, err := ports.ParsePlan(resp.Values, year, month)
	if err != nil {
		return ports.PlanPatch{}, err
	}

	c.logger.InfoContext(ctx, "Plan imported from sheet",
		log.FieldMonth, patch.Month,
		"sheet", c.planSheet)
	return patch, nil
}

// Append mirrors one transaction as a ledger row:
// Date, Type, Category, Description, Amount (euros), ID.
func (c *Client) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	// Find the next empty row from the current sheet length.
	rng := fmt.Sprintf("%s!A:A", c.ledgerSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get sheet dimensions for %s: %w", c.ledgerSheet, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:F%d", c.ledgerSheet, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{{
		tx.Date.Key(),
		string(tx.Type),
		tx.Category,
		tx.Description,
		tx.Amount.Euros(),
		tx.ID,
	}}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update %s: %w", dataRange, err)
	}

	ref := dataRange
	c.logger.InfoContext(ctx, "Transaction mirrored to ledger",
		log.FieldTransactionID, tx.ID,
		log.FieldSheetsRef, ref)
	return ref, nil
}

// Delete clears the ledger row whose ID column matches transactionID.
func (c *Client) Delete(ctx context.Context, transactionID string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!F:F", c.ledgerSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}

	rowIdx := -1
	for i, row := range resp.Values {
		if len(row) > 0 && strings.TrimSpace(fmt.Sprint(row[0])) == transactionID {
			rowIdx = i + 1
			break
		}
	}
	if rowIdx == -1 {
		// Already gone; deletion is idempotent.
		c.logger.WarnContext(ctx, "Ledger row not found for delete",
			log.FieldTransactionID, transactionID)
		return nil
	}

	clearRange := fmt.Sprintf("%s!A%d:F%d", c.ledgerSheet, rowIdx, rowIdx)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	c.logger.InfoContext(ctx, "Ledger row cleared",
		log.FieldTransactionID, transactionID,
		log.FieldSheetsRef, clearRange)
	return nil
}
