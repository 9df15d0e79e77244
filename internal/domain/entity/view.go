package entity

// Label идентифицирует статическую надпись интерфейса.
type Label string

const (
	LabelDisclaimerTitle   Label = "disclaimer_title"
	LabelDisclaimerContent Label = "disclaimer_content"
	LabelUnderstand        Label = "understand"
	LabelChooseImage       Label = "choose_image"
	LabelPredict           Label = "predict"
	LabelLoading           Label = "loading"
	LabelOpenCamera        Label = "open_camera"
	LabelSwitchCamera      Label = "switch_camera"
	LabelCapture           Label = "capture"
	LabelCloseCamera       Label = "close_camera"
	LabelLanguage          Label = "language"
)

// StaticLabels — все надписи, которые перерисовываются при смене языка.
func StaticLabels() []Label {
	return []Label{
		LabelDisclaimerTitle,
		LabelDisclaimerContent,
		LabelUnderstand,
		LabelChooseImage,
		LabelPredict,
		LabelLoading,
		LabelOpenCamera,
		LabelSwitchCamera,
		LabelCapture,
		LabelCloseCamera,
		LabelLanguage,
	}
}

// NoticeKind — тип временного сообщения пользователю.
type NoticeKind string

const (
	NoticeNone   NoticeKind = ""
	NoticePrompt NoticeKind = "prompt" // ошибка ввода пользователя
	NoticeDevice NoticeKind = "device" // ошибка камеры
	NoticeError  NoticeKind = "error"  // сеть или разбор ответа
	NoticeInfo   NoticeKind = "info"
)

// ResultCard одна карточка результата
type ResultCard struct {
	Class          string   `json:"class"`
	Confidence     float64  `json:"confidence"`
	ConfidenceText string   `json:"confidence_text"`
	Severity       Severity `json:"severity"`
	Count          int      `json:"count,omitempty"`
	Text           string   `json:"text"`
	Insight        string   `json:"insight,omitempty"`
}

// View — модель представления страницы для фронтендов.
type View struct {
	Language       Language         `json:"language"`
	Labels         map[Label]string `json:"labels"`
	ResultsTitle   string           `json:"results_title"`
	ResultsVisible bool             `json:"results_visible"`
	Cards          []ResultCard     `json:"cards"`
	Loading        bool             `json:"loading"`
	PredictEnabled bool             `json:"predict_enabled"`
	PreviewVisible bool             `json:"preview_visible"`
	HasOverlay     bool             `json:"has_overlay"`
	CameraOpen     bool             `json:"camera_open"`
	Facing         Facing           `json:"facing,omitempty"`
	Notice         string           `json:"notice,omitempty"`
	NoticeKind     NoticeKind       `json:"notice_kind,omitempty"`
}

// SetNotice показывает временное сообщение.
func (v *View) SetNotice(kind NoticeKind, text string) {
	v.NoticeKind = kind
	v.Notice = text
}

// ClearNotice убирает временное сообщение.
func (v *View) ClearNotice() {
	v.NoticeKind = NoticeNone
	v.Notice = ""
}
