package group

import (
	"fmt"
	"strings"

	"github.com/chathy-app/chathy/llm/tokenizer"
	"github.com/chathy-app/chathy/types"
	"go.uber.org/zap"
)

const (
	// replyHistoryWindow is how many log entries a responding agent sees.
	replyHistoryWindow = 20

	// arbiterHistoryWindow is how many log entries the arbiter sees.
	arbiterHistoryWindow = 10

	defaultUserLabel  = "Usuário"
	defaultAgentLabel = "Agente"
)

// Composer builds the instruction text sent to the completion provider.
// It performs no network calls; the returned string plus the conversation
// turn is the entire completion payload.
type Composer struct {
	counter tokenizer.Tokenizer
	logger  *zap.Logger
}

// NewComposer creates a prompt composer. The tokenizer is used only for
// prompt budget logging and may be nil.
func NewComposer(counter tokenizer.Tokenizer, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		counter: counter,
		logger:  logger.With(zap.String("component", "prompt_composer")),
	}
}

// BuildSystemPrompt produces the per-agent instruction block for one group
// turn: identity, roster of the other members, optional user block, the
// agent's persona fields verbatim, fixed group etiquette rules, the recent
// history and the triggering message.
func (c *Composer) BuildSystemPrompt(agent types.Agent, group types.Group, others []types.Agent, history []types.GroupMessage, user *types.UserProfile, message string) string {
	roster := make([]string, 0, len(others))
	for _, other := range others {
		roster = append(roster, fmt.Sprintf("%s (%s)", other.Name, other.Specialty))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Você é %s, %s.\n\n", agent.Name, agent.Title)
	fmt.Fprintf(&b, "CONTEXTO: Você está participando de um grupo chamado %q com outros especialistas: %s.\n\n",
		group.Name, strings.Join(roster, ", "))

	if user != nil {
		b.WriteString(c.userBlock(user))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "SUA ESPECIALIDADE: %s\n", agent.Specialty)
	fmt.Fprintf(&b, "SUA EXPERIÊNCIA: %s\n", agent.Experience)
	fmt.Fprintf(&b, "SUA ABORDAGEM: %s\n", agent.Approach)
	fmt.Fprintf(&b, "SUA DESCRIÇÃO: %s\n\n", agent.Description)
	fmt.Fprintf(&b, "DIRETRIZES:\n%s\n\n", agent.Guidelines)
	fmt.Fprintf(&b, "ESTILO DE PERSONALIDADE: %s\n\n", agent.PersonaStyle)
	fmt.Fprintf(&b, "CONHECIMENTO ESPECÍFICO:\n%s\n\n", agent.Documentation)

	b.WriteString("INSTRUÇÕES PARA CHAT EM GRUPO:\n")
	fmt.Fprintf(&b, etiquetteRules, agent.Name)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "CONTEXTO DA CONVERSA:\n%s\n\n", c.renderHistory(lastN(history, replyHistoryWindow), user))
	fmt.Fprintf(&b, "MENSAGEM ATUAL: %s\n\n", message)
	fmt.Fprintf(&b, "Responda como %s de forma natural e profissional:", agent.Name)

	prompt := b.String()
	c.logBudget("reply", agent.ID, prompt)
	return prompt
}

// etiquetteRules are fixed, not data-driven. The %s is the agent's own name
// so the mention rule reads naturally.
const etiquetteRules = `1. Você está em um grupo de especialistas trabalhando em colaboração
2. Responda apenas se a pergunta for da sua área de especialidade
3. Se outro agente já respondeu adequadamente, você pode complementar ou concordar brevemente
4. Se for mencionado com @ (ex: @%s), você deve responder sempre
5. Seja respeitoso com as contribuições dos outros agentes
6. Mantenha suas respostas focadas e profissionais
7. Você pode referenciar ou complementar o que outros agentes disseram
8. Se a pergunta não for da sua área, indique qual colega seria mais adequado
9. Trate o usuário pelo nome quando apropriado e considere seu perfil`

// BuildArbiterPrompt produces the coordinator instruction used to pick one
// responder when no agent was mentioned. The expected reply is exactly one
// roster id.
func (c *Composer) BuildArbiterPrompt(members []types.Agent, history []types.GroupMessage, user *types.UserProfile, message string) string {
	roster := make([]string, 0, len(members))
	for _, m := range members {
		roster = append(roster, fmt.Sprintf("%s: %s - %s (%s)", m.ID, m.Name, m.Specialty, m.Description))
	}

	var b strings.Builder
	b.WriteString("Você é um coordenador de grupo de agentes especialistas. Analise a mensagem do usuário e o contexto da conversa para decidir qual agente deve responder.\n\n")

	if user != nil {
		b.WriteString(c.userBlock(user))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "AGENTES DISPONÍVEIS:\n%s\n\n", strings.Join(roster, "\n"))
	b.WriteString(`REGRAS:
1. Escolha APENAS UM agente que seja mais adequado para responder
2. Se a mensagem não for específica de nenhuma especialidade, escolha o agente mais genérico
3. Se for uma pergunta de acompanhamento sobre algo que outro agente disse, pode ser o mesmo agente
4. Se for uma saudação ou mensagem geral, escolha um agente aleatório
5. Responda APENAS com o ID do agente (ex: "marketing-digital")`)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "CONTEXTO DA CONVERSA:\n%s\n\n", c.renderHistory(lastN(history, arbiterHistoryWindow), user))
	fmt.Fprintf(&b, "MENSAGEM ATUAL: %s\n\n", message)
	b.WriteString("Responda apenas com o ID do agente que deve responder:")

	prompt := b.String()
	c.logBudget("arbiter", "", prompt)
	return prompt
}

// userBlock renders the personalization section. Callers include it only
// when a profile exists; it is never emitted blank.
func (c *Composer) userBlock(user *types.UserProfile) string {
	bio := user.Bio
	if bio == "" {
		bio = "Não informado"
	}
	return fmt.Sprintf("INFORMAÇÕES DO USUÁRIO QUE VOCÊ ESTÁ ATENDENDO:\nNome: %s\nBio: %s\nAdapte sua comunicação ao perfil do usuário e trate-o pelo nome quando apropriado.\n", user.Name, bio)
}

// renderHistory renders log entries as speaker-labeled lines, oldest first.
func (c *Composer) renderHistory(history []types.GroupMessage, user *types.UserProfile) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		label := msg.SenderName
		switch {
		case msg.Sender == types.SenderUser:
			if user != nil && user.Name != "" {
				label = user.Name
			} else {
				label = defaultUserLabel
			}
		case label == "":
			label = defaultAgentLabel
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, msg.Content))
	}
	return strings.Join(lines, "\n")
}

func (c *Composer) logBudget(kind, agentID string, prompt string) {
	if c.counter == nil {
		return
	}
	count, err := c.counter.CountTokens(prompt)
	if err != nil {
		c.logger.Debug("token count failed", zap.Error(err))
		return
	}
	fields := []zap.Field{
		zap.String("kind", kind),
		zap.Int("prompt_tokens", count),
		zap.Int("max_tokens", c.counter.MaxTokens()),
	}
	if agentID != "" {
		fields = append(fields, zap.String("agent_id", agentID))
	}
	if count > c.counter.MaxTokens() {
		c.logger.Warn("prompt exceeds model context budget", fields...)
		return
	}
	c.logger.Debug("prompt budget", fields...)
}

// lastN returns the most recent n entries of msgs.
func lastN(msgs []types.GroupMessage, n int) []types.GroupMessage {
	if len(msgs) <= n {
		return msgs
	}
	return msgs[len(msgs)-n:]
}
