package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DBN92/our-journey-together/utils"
)

// CoachService fronts the AI gateway: it assembles the prompt pair for a
// generation request and streams the completion back through
// DecodeStream.
type CoachService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	log     *utils.Logger
}

func NewCoachService(log *utils.Logger) *CoachService {
	baseURL := strings.TrimRight(os.Getenv("AI_GATEWAY_URL"), "/")
	if baseURL == "" {
		baseURL = "https://ai.gateway.lovable.dev"
	}
	model := os.Getenv("AI_GATEWAY_MODEL")
	if model == "" {
		model = "google/gemini-2.5-flash"
	}
	return &CoachService{
		client:  &http.Client{Timeout: 2 * time.Minute},
		baseURL: baseURL,
		apiKey:  os.Getenv("AI_GATEWAY_KEY"),
		model:   model,
		log:     log,
	}
}

// GenerateRequest carries the generation type plus a free-form
// preference mapping. Clients send mixed value types ("goal" is a
// string, "together" a boolean), so values stay untyped until
// buildPrompts coerces them.
type GenerateRequest struct {
	Type        string         `json:"type"`
	Preferences map[string]any `json:"preferences"`
}

// CoachError carries the HTTP status to report to the client along with
// a user-facing message. Rate limits and exhausted credits get distinct
// messages because the remediation differs.
type CoachError struct {
	Status  int
	Message string
}

func (e *CoachError) Error() string { return e.Message }

func coachErrorForStatus(status int) *CoachError {
	switch status {
	case http.StatusTooManyRequests:
		return &CoachError{Status: status, Message: "Muitas requisições. Tente novamente em alguns segundos."}
	case http.StatusPaymentRequired:
		return &CoachError{Status: status, Message: "Créditos de IA esgotados. Adicione mais créditos em Configurações."}
	default:
		return &CoachError{Status: http.StatusInternalServerError, Message: "Erro ao gerar conteúdo. Tente novamente."}
	}
}

// Stream generates content for the request and forwards every text delta
// to onDelta together with the accumulated text so far. It returns the
// full generated text.
func (s *CoachService) Stream(ctx context.Context, req GenerateRequest, onDelta func(delta, accumulated string)) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI_GATEWAY_KEY not set")
	}

	systemPrompt, userPrompt := buildPrompts(req)

	body := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"stream": true,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ai gateway request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var gwErr struct {
			Error string `json:"error"`
		}
		upstream := string(raw)
		if json.Unmarshal(raw, &gwErr) == nil && gwErr.Error != "" {
			upstream = gwErr.Error
		}
		s.log.Error("ai gateway error", "status", resp.StatusCode, "body", upstream)
		return "", coachErrorForStatus(resp.StatusCode)
	}

	prev := 0
	full, err := DecodeStream(ctx, resp.Body, func(accumulated string) {
		if onDelta != nil {
			onDelta(accumulated[prev:], accumulated)
		}
		prev = len(accumulated)
	})
	if err != nil {
		return full, err
	}
	return full, nil
}

// buildPrompts mirrors the coach persona prompts: a workout planner, a
// meal planner, or a generic wellness coach for anything else. Missing
// preferences fall back to sensible defaults.
func buildPrompts(req GenerateRequest) (systemPrompt, userPrompt string) {
	prefs := req.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}
	pick := func(key, fallback string) string {
		if v := strings.TrimSpace(prefString(prefs[key])); v != "" {
			return v
		}
		return fallback
	}
	truthy := func(key string) bool {
		switch v := prefs[key].(type) {
		case bool:
			return v
		case string:
			return v != "" && !strings.EqualFold(v, "false")
		case nil:
			return false
		default:
			return true
		}
	}

	switch req.Type {
	case "workout":
		systemPrompt = `Você é um personal trainer carinhoso e motivador especializado em casais.
Crie planos de treino simples, eficazes e que podem ser feitos juntos ou individualmente.
Foque em:
- Exercícios que não precisam de equipamentos caros
- Variações para diferentes níveis de condicionamento
- Sugestões de exercícios para fazer em casal
- Linguagem acolhedora e motivadora
- Duração de 20-45 minutos
Responda em português brasileiro. Use emojis moderadamente.`

		var sb strings.Builder
		sb.WriteString("Crie um plano de treino personalizado com base nestas preferências:\n")
		sb.WriteString("Objetivo: " + pick("goal", "Saúde geral e bem-estar") + "\n")
		sb.WriteString("Duração preferida: " + pick("duration", "30 minutos") + "\n")
		sb.WriteString("Nível de condicionamento: " + pick("level", "Iniciante") + "\n")
		sb.WriteString("Equipamentos disponíveis: " + pick("equipment", "Nenhum (treino funcional)") + "\n")
		if truthy("together") {
			sb.WriteString("Incluir exercícios para fazer em casal\n")
		}
		sb.WriteString(`
Formate a resposta com:
1. Nome criativo para o treino
2. Aquecimento (3-5 minutos)
3. Treino principal (exercícios com séries e repetições)
4. Relaxamento/alongamento
5. Uma mensagem motivacional para o casal`)
		userPrompt = sb.String()

	case "meal":
		systemPrompt = `Você é um nutricionista gentil e prático especializado em alimentação para casais.
Crie sugestões de refeições saudáveis, saborosas e práticas.
Foque em:
- Receitas simples que podem ser preparadas juntos
- Ingredientes acessíveis
- Opções equilibradas sem extremismos
- Porções para 2 pessoas
- Linguagem acolhedora e sem julgamentos
Responda em português brasileiro. Use emojis moderadamente.`

		var sb strings.Builder
		sb.WriteString("Crie um plano de refeição saudável com base nestas preferências:\n")
		sb.WriteString("Tipo de refeição: " + pick("mealType", "Almoço") + "\n")
		sb.WriteString("Restrições alimentares: " + pick("restrictions", "Sem restrições") + "\n")
		sb.WriteString("Tempo de preparo: " + pick("cookingTime", "até 30 minutos") + "\n")
		if v := pick("cuisine", ""); v != "" {
			sb.WriteString("Estilo culinário preferido: " + v + "\n")
		}
		sb.WriteString(`
Formate a resposta com:
1. Nome da receita
2. Ingredientes (para 2 pessoas)
3. Modo de preparo simples
4. Dicas de preparo em casal
5. Informações nutricionais resumidas
6. Variações possíveis`)
		userPrompt = sb.String()

	default:
		systemPrompt = `Você é um coach de bem-estar acolhedor especializado em casais.
Dê dicas práticas e motivadoras sobre saúde, exercícios e alimentação.
Responda em português brasileiro com linguagem carinhosa.`

		userPrompt = pick("question", "Dê uma dica de bem-estar para casais.")
	}
	return systemPrompt, userPrompt
}

// prefString renders a preference value for prompt text. JSON numbers
// arrive as float64.
func prefString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
