package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/services"
	"github.com/sahilchouksey/college-directory/utils/response"
)

// Importer applies a decoded bulk upload
type Importer interface {
	Run(ctx context.Context, req services.ImportRequest) *services.ImportSummary
}

// UploadHandler handles bulk college uploads
type UploadHandler struct {
	importer Importer
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(importer Importer) *UploadHandler {
	return &UploadHandler{importer: importer}
}

// UploadResponse is the body returned by both upload endpoints
type UploadResponse struct {
	Message  string    `json:"message"`
	BatchID  uuid.UUID `json:"batch_id"`
	Inserted int       `json:"inserted"`
	Updated  int       `json:"updated"`
	Errors   []string  `json:"errors"`
}

// bulkCollegeData keeps records raw so one malformed record fails alone
type bulkCollegeData struct {
	Colleges []json.RawMessage `json:"colleges"`
}

// UploadJSON handles POST /api/admin/upload/json
func (h *UploadHandler) UploadJSON(c *fiber.Ctx) error {
	body := c.Body()

	var payload bulkCollegeData
	if err := json.Unmarshal(body, &payload); err != nil {
		return response.BadRequest(c, "Invalid JSON body: "+err.Error())
	}
	if payload.Colleges == nil {
		return response.BadRequest(c, `Request body must contain a "colleges" array`)
	}

	records := make([]services.ImportRecord, len(payload.Colleges))
	for i, raw := range payload.Colleges {
		records[i].Position = i + 1
		if err := json.Unmarshal(raw, &records[i].College); err != nil {
			records[i].Err = fmt.Errorf("invalid record: %v", err)
		}
	}

	summary := h.importer.Run(c.UserContext(), services.ImportRequest{
		Source:  model.ImportSourceJSON,
		Raw:     append([]byte(nil), body...),
		Records: records,
	})

	return response.Success(c, newUploadResponse(summary))
}

// UploadCSV handles POST /api/admin/upload/csv with the file in the "file" field
func (h *UploadHandler) UploadCSV(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "CSV file is required in the \"file\" field")
	}

	fileContent, err := file.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to open uploaded file")
	}
	defer fileContent.Close()

	data, err := io.ReadAll(fileContent)
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return response.BadRequest(c, "CSV file is empty")
	}
	if !isText(data) {
		return response.BadRequest(c, "Uploaded file is not a text CSV file")
	}

	records, err := services.DecodeCollegeCSV(bytes.NewReader(data))
	if err != nil {
		return response.HandleError(c, err)
	}

	summary := h.importer.Run(c.UserContext(), services.ImportRequest{
		Source:   model.ImportSourceCSV,
		FileName: file.Filename,
		Raw:      data,
		Records:  records,
	})

	return response.Success(c, newUploadResponse(summary))
}

// CSVTemplate handles GET /api/admin/upload/csv/template
func (h *UploadHandler) CSVTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="colleges_template.csv"`)
	return c.SendString(services.CSVTemplate())
}

func newUploadResponse(summary *services.ImportSummary) UploadResponse {
	return UploadResponse{
		Message:  fmt.Sprintf("Processed %d colleges: %d inserted, %d updated, %d failed", summary.Total, summary.Inserted, summary.Updated, len(summary.Errors)),
		BatchID:  summary.BatchID,
		Inserted: summary.Inserted,
		Updated:  summary.Updated,
		Errors:   summary.ErrorMessages(),
	}
}

// isText rejects binary uploads such as spreadsheets or images
func isText(data []byte) bool {
	sniff := data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	contentType := http.DetectContentType(sniff)
	if len(contentType) < 5 || contentType[:5] != "text/" {
		return false
	}
	return utf8.Valid(data)
}
