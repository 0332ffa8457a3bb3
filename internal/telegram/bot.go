package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"peet-planner/internal/app"
	"peet-planner/internal/card"
	"peet-planner/internal/config"
	"peet-planner/internal/metrics"
)

// Bot wraps the Telegram API around the planning application.
type Bot struct {
	api          *tgbotapi.BotAPI
	app          *app.App
	prefs        *PrefsRepository
	cards        *card.Service
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	application *app.App,
	prefs *PrefsRepository,
	cards *card.Service,
	metricsStore *metrics.Store,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		app:          application,
		prefs:        prefs,
		cards:        cards,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook and card handlers with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/card", b.cards.Handler(b.app.Engine()))
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		b.handleClipRequest(msg, text)
		return
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "/start":
		b.reply(msg.Chat.ID, startText)
	case "/vandaag":
		b.handleCookRequest(msg, 1, fields[1:])
	case "/vooruit":
		b.handleForwardRequest(msg, fields[1:])
	case "/prefs":
		b.handlePrefsRequest(msg, fields[1:])
	case "/status":
		b.handleStatusRequest(msg)
	case "/usage":
		b.handleUsageRequest(msg)
	default:
		b.reply(msg.Chat.ID, "Onbekend commando. Probeer /start voor een overzicht.")
	}
}

const startText = `*Peet kiest.*

/vandaag - één gerecht voor vandaag
/vooruit 3 - planning voor 2, 3 of 5 dagen
/prefs - voorkeuren bekijken of zetten (bijv. persons=4 veg=ja)
/status - systeemstatus

Stuur een recept-URL om die te laten inlezen.
Extra wensen kunnen achter elk commando: /vandaag keuken=italiaans tijd=kort`

func (b *Bot) handleCookRequest(msg *tgbotapi.Message, days int, args []string) {
	sent, ok := b.replyStatus(msg.Chat.ID, "🧑‍🍳 *Peet denkt na...*")
	if !ok {
		return
	}

	userID := fmt.Sprintf("%d", msg.From.ID)
	raw, err := b.buildRequest(userID, days, args)
	if err != nil {
		b.edit(msg.Chat.ID, sent.MessageID, fmt.Sprintf("❌ %v", err))
		return
	}

	cooked, err := b.app.Cook(context.Background(), userID, raw)
	if err != nil {
		log.Printf("Error cooking plan: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		b.edit(msg.Chat.ID, sent.MessageID, fmt.Sprintf("❌ *Dat lukte niet:*\n```\n%v\n```", safeErr))
		return
	}

	shareURL := ""
	if token, err := b.cards.Issue(cooked.Context, cooked.Seed); err != nil {
		log.Printf("Failed to issue card token: %v", err)
	} else {
		shareURL = fmt.Sprintf("%s/card?token=%s", b.cfg.CardBaseURL, token)
	}

	b.edit(msg.Chat.ID, sent.MessageID, formatCookedPlan(cooked, shareURL))
}

func (b *Bot) handleForwardRequest(msg *tgbotapi.Message, args []string) {
	if len(args) == 0 {
		b.reply(msg.Chat.ID, "Gebruik: /vooruit 2, /vooruit 3 of /vooruit 5")
		return
	}

	days, err := strconv.Atoi(args[0])
	if err != nil || (days != 2 && days != 3 && days != 5) {
		b.reply(msg.Chat.ID, "Vooruit plannen kan voor 2, 3 of 5 dagen.")
		return
	}

	b.handleCookRequest(msg, days, args[1:])
}

func (b *Bot) handleClipRequest(msg *tgbotapi.Message, url string) {
	sent, ok := b.replyStatus(msg.Chat.ID, "✂️ *Recept inlezen...*")
	if !ok {
		return
	}

	clipped, err := b.app.ClipRecipe(context.Background(), url)
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		b.edit(msg.Chat.ID, sent.MessageID, fmt.Sprintf("❌ *Inlezen mislukte:*\n```\n%v\n```", safeErr))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ *%s*\n\n", clipped.Title))
	sb.WriteString("*Ingrediënten*\n")
	for _, ing := range clipped.Ingredients {
		sb.WriteString(fmt.Sprintf("• %s\n", ing))
	}
	sb.WriteString("\n*Bereiding*\n")
	for i, step := range clipped.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}
	if clipped.PrepTime != "" {
		sb.WriteString(fmt.Sprintf("\n⏱ %s", clipped.PrepTime))
	}

	b.edit(msg.Chat.ID, sent.MessageID, sb.String())
}

func (b *Bot) handlePrefsRequest(msg *tgbotapi.Message, args []string) {
	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)

	prefs, err := b.prefs.Get(ctx, userID)
	if err != nil {
		log.Printf("Failed to load prefs: %v", err)
		b.reply(msg.Chat.ID, "❌ Voorkeuren konden niet worden geladen.")
		return
	}

	if len(args) > 0 {
		if err := applyPrefArgs(&prefs, args); err != nil {
			b.reply(msg.Chat.ID, fmt.Sprintf("❌ %v", err))
			return
		}
		if err := b.prefs.Upsert(ctx, prefs); err != nil {
			log.Printf("Failed to save prefs: %v", err)
			b.reply(msg.Chat.ID, "❌ Voorkeuren konden niet worden opgeslagen.")
			return
		}
	}

	b.reply(msg.Chat.ID, formatPrefs(prefs))
}

func (b *Bot) handleStatusRequest(msg *tgbotapi.Message) {
	health := metrics.GetSysHealth(b.cfg.PlanArchivePath)

	var sb strings.Builder
	sb.WriteString("🧠 *Systeemstatus*\n\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (alloc) / %dMB (sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Archief: %s (%d plannen)\n", health.ArchiveSize, health.PlanFiles))

	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) handleUsageRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.TelegramAdminID {
		b.reply(msg.Chat.ID, "⛔ Alleen voor de beheerder.")
		return
	}

	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		log.Printf("Failed to fetch usage: %v", err)
		b.reply(msg.Chat.ID, "❌ Gebruik kon niet worden opgehaald.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 *Modelgebruik (7 dagen)*\n\n")
	if len(usage) == 0 {
		sb.WriteString("_Nog geen data_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d calls)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	b.reply(msg.Chat.ID, sb.String())
}

// buildRequest merges stored preferences with command arguments into a raw
// request for the engine. Arguments always win over stored preferences.
func (b *Bot) buildRequest(userID string, days int, args []string) (map[string]any, error) {
	prefs, err := b.prefs.Get(context.Background(), userID)
	if err != nil {
		log.Printf("Failed to load prefs, using defaults: %v", err)
	}

	raw := map[string]any{
		"days":       days,
		"persons":    prefs.Persons,
		"vegetarian": prefs.Vegetarian,
		"allergies":  strings.Join(prefs.Allergies, ","),
		"nogo":       strings.Join(prefs.NoGo, ","),
		"language":   prefs.Language,
	}
	if days > 1 {
		raw["mode"] = "vooruit"
	}

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("argument %q is geen sleutel=waarde paar", arg)
		}
		switch strings.ToLower(key) {
		case "personen", "persons":
			raw["persons"] = value
		case "veg", "vegetarisch", "vegetarian":
			raw["vegetarian"] = value
		case "allergie", "allergies":
			raw["allergies"] = value
		case "nogo":
			raw["nogo"] = value
		case "moment":
			raw["moment"] = value
		case "tijd", "time":
			raw["time"] = value
		case "ambitie", "ambition":
			raw["ambition"] = value
		case "keuken", "kitchen":
			raw["kitchen"] = value
		case "taal", "language":
			raw["language"] = value
		default:
			return nil, fmt.Errorf("onbekende sleutel %q", key)
		}
	}

	return raw, nil
}

func applyPrefArgs(prefs *Prefs, args []string) error {
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("argument %q is geen sleutel=waarde paar", arg)
		}
		switch strings.ToLower(key) {
		case "personen", "persons":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 8 {
				return fmt.Errorf("personen moet een getal tussen 1 en 8 zijn")
			}
			prefs.Persons = n
		case "veg", "vegetarisch", "vegetarian":
			v := strings.ToLower(value)
			prefs.Vegetarian = v == "1" || v == "true" || v == "yes" || v == "ja" || v == "y" || v == "on"
		case "allergie", "allergies":
			prefs.Allergies = splitCSV(value)
		case "nogo":
			prefs.NoGo = splitCSV(value)
		case "taal", "language":
			if value != "nl" && value != "en" {
				return fmt.Errorf("taal moet nl of en zijn")
			}
			prefs.Language = value
		default:
			return fmt.Errorf("onbekende voorkeur %q", key)
		}
	}
	return nil
}

func formatPrefs(prefs Prefs) string {
	veg := "nee"
	if prefs.Vegetarian {
		veg = "ja"
	}
	allergies := strings.Join(prefs.Allergies, ", ")
	if allergies == "" {
		allergies = "geen"
	}
	nogo := strings.Join(prefs.NoGo, ", ")
	if nogo == "" {
		nogo = "geen"
	}

	return fmt.Sprintf(`⚙️ *Voorkeuren*

• Personen: %d
• Vegetarisch: %s
• Allergieën: %s
• No-go: %s
• Taal: %s`, prefs.Persons, veg, allergies, nogo, prefs.Language)
}

func formatCookedPlan(cooked *app.CookedPlan, shareURL string) string {
	var sb strings.Builder

	if cooked.Plan.DaysCount == 1 {
		sb.WriteString("🍽 *Peet kiest voor vandaag*\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("📅 *Peet kiest vooruit: %d dagen*\n\n", cooked.Plan.DaysCount))
	}

	recipesByDay := map[int]string{}
	if cooked.Recipes != nil {
		for _, r := range cooked.Recipes.Days {
			recipesByDay[r.Day] = r.Intro
		}
	}

	for _, day := range cooked.Plan.Days {
		sb.WriteString(fmt.Sprintf("*Dag %d*: %s\n", day.Day, day.DishName))
		sb.WriteString(fmt.Sprintf("_%s_\n", day.Why))
		if intro := recipesByDay[day.Day]; intro != "" {
			sb.WriteString(intro + "\n")
		}
		sb.WriteString("\n")
	}

	if shareURL != "" {
		sb.WriteString(fmt.Sprintf("🔗 [Deel dit plan](%s)\n", shareURL))
	}

	return sb.String()
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) replyStatus(chatID int64, text string) (tgbotapi.Message, bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return tgbotapi.Message{}, false
	}
	return sent, true
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}
