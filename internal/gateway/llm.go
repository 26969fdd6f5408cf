package gateway

import (
	"context"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// FallbackReply is returned whenever the model call fails. Tutoring flows
// stay on a 200 path; the failure only shows up in the message body.
const FallbackReply = "Sorry, I couldn't come up with an answer right now. Please try again."

const tutorSystemPrompt = "You are an AI tutor helping a student with their course. " +
	"Use the provided course materials when they are relevant, explain concepts " +
	"step by step, and keep answers concise and encouraging. If the materials do " +
	"not cover the question, say so and answer from general knowledge."

const narrationSystemPrompt = "First grasp the content of the document provided in the user content. " +
	"You are an AI tutor who creates short, engaging educational scripts for Instagram Reels-style videos. " +
	"Your task is to summarize the user's document content into a spoken dialogue script - no narration " +
	"instructions or scene descriptions, only the spoken text itself. The tone should be friendly, concise, " +
	"and helpful, like a teacher explaining something interesting and easy to understand. Keep the dialogue " +
	"under 30 seconds of speech (aim for less than 70 words). Make sure it flows naturally when read aloud, " +
	"as the text will be converted directly into an AI voiceover. If the topic is technical, use simple " +
	"analogies or examples to make it relatable."

type ChatTurn struct {
	Role    string
	Content string
}

type LLMGateway struct {
	client *openai.Client
	model  string
}

func NewLLMGateway(apiKey, model string) *LLMGateway {
	return &LLMGateway{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// TutorReply builds one completion request from the course material and the
// session history and returns the assistant's answer. Errors never propagate;
// the fallback string is the reply.
func (g *LLMGateway) TutorReply(ctx context.Context, courseMaterial string, history []ChatTurn) string {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: tutorSystemPrompt},
	}
	if courseMaterial != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Course materials:\n" + courseMaterial,
		})
	}
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("ERROR [gateway.LLM] tutor completion failed: %v", err)
		return FallbackReply
	}
	return resp.Choices[0].Message.Content
}

// NarrationScript summarizes document text into a short voiceover script.
func (g *LLMGateway) NarrationScript(ctx context.Context, documentText string) string {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: narrationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: documentText},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("ERROR [gateway.LLM] narration completion failed: %v", err)
		return FallbackReply
	}
	return resp.Choices[0].Message.Content
}
