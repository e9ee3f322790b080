package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PrinterService hands a rendered invoice PDF to an external print agent
// over HTTP.
type PrinterService struct {
	client      *http.Client
	baseURL     string
	settleDelay time.Duration
}

type printRequest struct {
	Filename string `json:"filename"`
	Data     string `json:"data"` // base64 PDF
	Copies   int    `json:"copies"`
}

type printResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewPrinterService(baseURL string, settleDelay time.Duration) *PrinterService {
	return &PrinterService{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		settleDelay: settleDelay,
	}
}

// PrintInvoice sends the rendered document to the agent. A short fixed
// delay before the request gives the agent's print surface time to settle;
// it is best-effort, not a correctness wait.
func (s *PrinterService) PrintInvoice(filename string, pdfData []byte, copies int) error {
	if s.baseURL == "" {
		return fmt.Errorf("print agent not configured")
	}
	if copies < 1 {
		copies = 1
	}

	time.Sleep(s.settleDelay)

	req := printRequest{
		Filename: filename,
		Data:     base64.StdEncoding.EncodeToString(pdfData),
		Copies:   copies,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal print request: %w", err)
	}

	resp, err := s.client.Post(
		s.baseURL+"/print",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return fmt.Errorf("failed to send print request: %w", err)
	}
	defer resp.Body.Close()

	var printResp printResponse
	if err := json.NewDecoder(resp.Body).Decode(&printResp); err != nil {
		return fmt.Errorf("failed to decode print response: %w", err)
	}

	if !printResp.Success {
		return fmt.Errorf("print failed: %s", printResp.Message)
	}

	return nil
}
