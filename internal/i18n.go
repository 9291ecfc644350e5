package internal

import "fmt"

// Language is one of the two supported UI languages
type Language string

const (
	LanguageIndonesian Language = "id"
	LanguageEnglish    Language = "en"

	// DefaultLanguage is used when no valid preference is stored
	DefaultLanguage = LanguageIndonesian
)

// ParseLanguage accepts exactly "id" or "en"
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageIndonesian, LanguageEnglish:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unsupported language %q (supported: id, en)", s)
	}
}

// Translation keys used outside pure presentation
const (
	KeyErrorConnect     = "audit_error_connect"
	KeyImageErrFormat   = "img_err_format"
	KeyImageErrSize     = "img_err_size"
	KeyHistNotFound     = "hist_err_not_found"
	KeyHistDelConfirm   = "hist_err_del_confirm"
	KeyHistDelFail      = "hist_err_del_fail"
	KeyHistTitle        = "hist_title"
	KeyHistLoading      = "hist_loading"
	KeyHistEmpty        = "hist_empty"
	KeyHistEmptyDesc    = "hist_empty_desc"
	KeyHistTotal        = "hist_total"
	KeyHistSourceImage  = "hist_source_img"
	KeyHistSourceText   = "hist_source_text"
	KeyHistNoData       = "hist_no_data"
	KeyHistDeleted      = "hist_deleted"
	KeyResultTitle      = "audit_result_title"
	KeyMetaTotal        = "audit_meta_total"
	KeyMetaToxic        = "audit_meta_toxic"
	KeyMetaTime         = "audit_meta_time"
	KeyMetaScore        = "audit_meta_score"
	KeyColSafe          = "audit_col_safe"
	KeyColToxic         = "audit_col_toxic"
	KeyVerdictAttention = "audit_verdict_attention"
	KeyVerdictSafe      = "audit_verdict_safe"
	KeyMessageDetail    = "audit_message_detail"
	KeyTextAnalyzing    = "text_analyzing"
	KeyImageScanning    = "img_scanning"
	KeySysOnline        = "sys_online"
	KeySysOffline       = "sys_offline"
	KeySysChecking      = "sys_checking"

	// CLI strings; values containing verbs are fmt formats
	KeySavedAs      = "cli_saved_as"
	KeyHistTip      = "cli_hist_tip"
	KeyDelCancelled = "cli_del_cancelled"
	KeyLangSet      = "cli_lang_set"
	KeyExportDone   = "cli_export_done"
	KeyColID        = "cli_col_id"
	KeyColSource    = "cli_col_source"
	KeyColMessages  = "cli_col_messages"
	KeyColScore     = "cli_col_score"
	KeyColCreated   = "cli_col_created"
	KeyToday        = "cli_today"
)

var translations = map[Language]map[string]string{
	LanguageIndonesian: {
		KeyErrorConnect:     "Gagal terhubung ke backend. Pastikan server aktif.",
		KeyImageErrFormat:   "Format file harus gambar (JPG/PNG).",
		KeyImageErrSize:     "Ukuran file maksimal 5MB.",
		KeyHistNotFound:     "Sesi audit tidak ditemukan.",
		KeyHistDelConfirm:   "Apakah Anda yakin ingin menghapus riwayat ini?",
		KeyHistDelFail:      "Gagal menghapus riwayat.",
		KeyHistTitle:        "Riwayat Audit",
		KeyHistLoading:      "Memuat data riwayat...",
		KeyHistEmpty:        "Belum ada riwayat audit",
		KeyHistEmptyDesc:    "Mulai analisis teks atau gambar pertama Anda.",
		KeyHistTotal:        "Total Sesi",
		KeyHistSourceImage:  "Upload Gambar",
		KeyHistSourceText:   "Teks Langsung",
		KeyHistNoData:       "Tidak ada data analisis untuk sesi ini.",
		KeyHistDeleted:      "Riwayat dihapus.",
		KeyResultTitle:      "Hasil Analisis",
		KeyMetaTotal:        "Total Pesan",
		KeyMetaToxic:        "Pesan Toxic",
		KeyMetaTime:         "Waktu Proses",
		KeyMetaScore:        "Skor Keamanan",
		KeyColSafe:          "Aman",
		KeyColToxic:         "Toxic",
		KeyVerdictAttention: "Perlu Perhatian",
		KeyVerdictSafe:      "Aman",
		KeyMessageDetail:    "Detail Pesan",
		KeyTextAnalyzing:    "Menganalisis Teks...",
		KeyImageScanning:    "Memproses Gambar...",
		KeySysOnline:        "Sistem Online",
		KeySysOffline:       "Backend Offline",
		KeySysChecking:      "Memeriksa Sistem...",
		KeySavedAs:          "Tersimpan sebagai sesi %d",
		KeyHistTip:          "Tip: gunakan `chatguard history show %d` untuk melihat sesi",
		KeyDelCancelled:     "Dibatalkan.",
		KeyLangSet:          "Bahasa diatur ke %s",
		KeyExportDone:       "Ekspor selesai: sesi %d ditulis ke %s",
		KeyColID:            "ID",
		KeyColSource:        "Sumber",
		KeyColMessages:      "Pesan",
		KeyColScore:         "Skor",
		KeyColCreated:       "Dibuat",
		KeyToday:            "Hari ini",
	},
	LanguageEnglish: {
		KeyErrorConnect:     "Failed to connect to backend. Ensure server is running.",
		KeyImageErrFormat:   "File must be an image (JPG/PNG).",
		KeyImageErrSize:     "Maximum file size is 5MB.",
		KeyHistNotFound:     "Audit session not found.",
		KeyHistDelConfirm:   "Are you sure you want to delete this history?",
		KeyHistDelFail:      "Failed to delete history.",
		KeyHistTitle:        "Audit History",
		KeyHistLoading:      "Loading history data...",
		KeyHistEmpty:        "No audit history yet",
		KeyHistEmptyDesc:    "Start your first text or image analysis.",
		KeyHistTotal:        "Total Sessions",
		KeyHistSourceImage:  "Image Upload",
		KeyHistSourceText:   "Direct Text",
		KeyHistNoData:       "No analysis data available for this session.",
		KeyHistDeleted:      "History deleted.",
		KeyResultTitle:      "Analysis Results",
		KeyMetaTotal:        "Total Messages",
		KeyMetaToxic:        "Toxic Messages",
		KeyMetaTime:         "Processing Time",
		KeyMetaScore:        "Safety Score",
		KeyColSafe:          "Safe",
		KeyColToxic:         "Toxic",
		KeyVerdictAttention: "Needs Attention",
		KeyVerdictSafe:      "Safe",
		KeyMessageDetail:    "Message Details",
		KeyTextAnalyzing:    "Analyzing Text...",
		KeyImageScanning:    "Processing Image...",
		KeySysOnline:        "System Online",
		KeySysOffline:       "Backend Offline",
		KeySysChecking:      "Checking System...",
		KeySavedAs:          "Saved as session %d",
		KeyHistTip:          "Tip: use `chatguard history show %d` to view a session",
		KeyDelCancelled:     "Cancelled.",
		KeyLangSet:          "Language set to %s",
		KeyExportDone:       "Export complete: session %d written to %s",
		KeyColID:            "ID",
		KeyColSource:        "Source",
		KeyColMessages:      "Messages",
		KeyColScore:         "Score",
		KeyColCreated:       "Created",
		KeyToday:            "Today",
	},
}

// Translator resolves user-facing strings
type Translator interface {
	T(key string) string
}

// StaticTranslator serves strings for one fixed language
type StaticTranslator struct {
	Lang Language
}

// NewTranslator creates a translator; unknown languages fall back to the default
func NewTranslator(lang Language) StaticTranslator {
	if _, ok := translations[lang]; !ok {
		lang = DefaultLanguage
	}
	return StaticTranslator{Lang: lang}
}

// T returns the string for key, or the key itself when it is not in the table
func (t StaticTranslator) T(key string) string {
	if s, ok := translations[t.Lang][key]; ok {
		return s
	}
	return key
}
