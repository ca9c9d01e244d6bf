package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/coah80/getbot/internal/media"
)

const (
	colorWaiting  = 0xFFA500
	colorSuccess  = 0x00FF00
	colorOversize = 0xFF6B00
	colorError    = 0xFF0000

	maxFieldValue = 1024
)

func timestamp(now time.Time) string {
	return now.Format(time.RFC3339)
}

func requestedBy(tag string) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: "Solicitado por " + tag}
}

// fieldValue keeps long URLs inside Discord's field limit.
func fieldValue(s string) string {
	if s == "" {
		return "-"
	}
	if len(s) > maxFieldValue {
		return s[:maxFieldValue-3] + "..."
	}
	return s
}

func waitingEmbed(now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⏳ Descargando video...",
		Description: "Por favor espera, estoy procesando tu solicitud. Esto puede tardar un momento.",
		Color:       colorWaiting,
		Timestamp:   timestamp(now),
	}
}

func successEmbed(sizeMiB float64, ext, sourceURL, tag string, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Video descargado exitosamente",
		Description: "Tu video está listo para disfrutar.",
		Color:       colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📦 Tamaño", Value: media.FormatMiB(sizeMiB), Inline: true},
			{Name: "📁 Formato", Value: strings.ToUpper(ext), Inline: true},
			{Name: "🔗 URL Original", Value: fieldValue(sourceURL)},
		},
		Timestamp: timestamp(now),
		Footer:    requestedBy(tag),
	}
}

func oversizeEmbed(sizeMiB float64, sourceURL, tag string, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚠️ Video muy grande",
		Description: fmt.Sprintf("El video pesa **%.2f MB**, lo cual excede el límite de Discord (%d MB).",
			sizeMiB, media.AttachmentLimit/media.MiB),
		Color: colorOversize,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💡 Sugerencia", Value: "Intenta con un video más corto o de menor calidad."},
			{Name: "URL Original", Value: fieldValue(sourceURL)},
		},
		Timestamp: timestamp(now),
		Footer:    requestedBy(tag),
	}
}

func failureEmbed(r FailureReport, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       r.Title,
		Description: r.Detail,
		Color:       colorError,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔗 URL proporcionada", Value: fieldValue(r.OriginalURL)},
			{Name: "💡 Plataformas compatibles", Value: "Instagram, TikTok, Twitter/X, Facebook, YouTube y más."},
			{Name: "🔍 Consejos", Value: "• Asegúrate de que el video sea público\n• Verifica que la URL esté completa\n• Intenta con un video diferente"},
		},
		Timestamp: timestamp(now),
	}
}
