package domain

import "time"

type PDFDocumentType string

const (
	PDFAnalysisResult     PDFDocumentType = "ANALYSIS_RESULT"
	PDFConsultationReport PDFDocumentType = "CONSULTATION_REPORT"
	PDFPrescription       PDFDocumentType = "PRESCRIPTION"
	PDFMedicalCertificate PDFDocumentType = "MEDICAL_CERTIFICATE"
	PDFOther              PDFDocumentType = "OTHER"
)

func (t PDFDocumentType) Title() string {
	switch t {
	case PDFAnalysisResult:
		return "Результат анализов"
	case PDFConsultationReport:
		return "Заключение консультации"
	case PDFPrescription:
		return "Рецепт"
	case PDFMedicalCertificate:
		return "Справка"
	default:
		return "Документ"
	}
}

type PDFDocument struct {
	ID           int64           `json:"id"`
	Filename     string          `json:"filename"`
	OriginalName string          `json:"originalName"`
	FilePath     string          `json:"filePath"`
	FileSize     int64           `json:"fileSize"`
	MimeType     string          `json:"mimeType"`
	DocumentType PDFDocumentType `json:"documentType"`
	UserID       *int64          `json:"userId,omitempty"`
	ChatID       *int64          `json:"chatId,omitempty"`
	URL          string          `json:"url,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
