package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mushroom-doctor/internal/domain/entity"
)

const (
	callbackPredict = "predict"
	callbackLang    = "lang"
	callbackCamera  = "camera"

	cameraSwitch  = "switch"
	cameraCapture = "capture"
	cameraClose   = "close"
)

var languageNames = map[entity.Language]string{
	entity.LanguageEnglish:  "English",
	entity.LanguageFilipino: "Filipino",
	entity.LanguageIlocano:  "Ilocano",
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// parseCallback разбирает данные кнопки вида "action:arg".
func parseCallback(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

func languageKeyboard(current entity.Language) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(entity.Languages()))
	for _, l := range entity.Languages() {
		name := languageNames[l]
		if l == current {
			name = "• " + name
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(name, callbackLang+":"+string(l)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func predictKeyboard(v entity.View) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(v.Labels[entity.LabelPredict], callbackPredict),
		),
	)
}

func cameraKeyboard(v entity.View) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(v.Labels[entity.LabelCapture], callbackCamera+":"+cameraCapture),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(v.Labels[entity.LabelSwitchCamera], callbackCamera+":"+cameraSwitch),
			tgbotapi.NewInlineKeyboardButtonData(v.Labels[entity.LabelCloseCamera], callbackCamera+":"+cameraClose),
		),
	)
}

func disclaimerText(v entity.View, help string) string {
	var sb strings.Builder
	sb.WriteString("⚠️ ")
	sb.WriteString(v.Labels[entity.LabelDisclaimerTitle])
	sb.WriteString("\n\n")
	sb.WriteString(v.Labels[entity.LabelDisclaimerContent])
	sb.WriteString("\n\n")
	sb.WriteString(help)
	return sb.String()
}

// resultsText собирает карточки в одно сообщение.
func resultsText(v entity.View, insightTitle string) string {
	if !v.ResultsVisible || len(v.Cards) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("🍄 ")
	sb.WriteString(v.ResultsTitle)
	for _, c := range v.Cards {
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "%s %s: %s", severityMark(c.Severity), c.Class, c.ConfidenceText)
		if c.Count > 1 {
			fmt.Fprintf(&sb, " (×%d)", c.Count)
		}
		sb.WriteString("\n")
		sb.WriteString(c.Text)
		if c.Insight != "" {
			sb.WriteString("\n\n💡 ")
			sb.WriteString(insightTitle)
			sb.WriteString(": ")
			sb.WriteString(c.Insight)
		}
	}
	return sb.String()
}

func severityMark(s entity.Severity) string {
	switch s {
	case entity.SeverityStrong:
		return "🔴"
	case entity.SeverityModerate:
		return "🟠"
	default:
		return "🟡"
	}
}

// noticeText — текущее сообщение представления с пометкой по типу.
func noticeText(v entity.View) string {
	if v.Notice == "" {
		return ""
	}
	switch v.NoticeKind {
	case entity.NoticePrompt:
		return "📸 " + v.Notice
	case entity.NoticeDevice:
		return "📷 " + v.Notice
	case entity.NoticeError:
		return "⚠️ " + v.Notice
	default:
		return "ℹ️ " + v.Notice
	}
}
