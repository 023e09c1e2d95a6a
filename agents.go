package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

// AgentCaller sends one message to an agent and returns its final reply.
type AgentCaller interface {
	Ask(ctx context.Context, userID, msg string) (string, error)
}

// AgentSpec describes one of the worker's agents.
type AgentSpec struct {
	Name        string
	Description string
	Instruction string
}

var (
	evaluatorSpec = AgentSpec{
		Name:        "resume_evaluator",
		Description: "Scores a candidate's resume sections against a job posting",
		Instruction: evaluatorPrompt(),
	}
	assistantSpec = AgentSpec{
		Name:        "candidate_assistant",
		Description: "Answers recruiter questions about analyzed candidates",
		Instruction: assistantPrompt(),
	}
)

func GetAgent(ctx context.Context, apiKey, modelName string, spec AgentSpec) (agent.Agent, error) {
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %v", err)
	}

	customAgent, err := llmagent.New(llmagent.Config{
		Name:        spec.Name,
		Model:       model,
		Description: spec.Description,
		Instruction: spec.Instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %v", err)
	}

	return customAgent, err
}

type adkAgent struct {
	appName  string
	runner   *runner.Runner
	sessions session.Service
}

// NewAgentCaller builds the agent and a runner over the shared session service.
func NewAgentCaller(ctx context.Context, apiKey, modelName string, spec AgentSpec, sessions session.Service) (AgentCaller, error) {
	a, err := GetAgent(ctx, apiKey, modelName, spec)
	if err != nil {
		return nil, err
	}
	r, err := runner.New(runner.Config{
		AppName:        a.Name(),
		Agent:          a,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &adkAgent{appName: a.Name(), runner: r, sessions: sessions}, nil
}

// Ask runs msg in a fresh agent session, which is deleted afterwards.
func (a *adkAgent) Ask(ctx context.Context, userID, msg string) (string, error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.appName,
		UserID:    userID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer a.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
		AppName:   created.Session.AppName(),
		UserID:    created.Session.UserID(),
		SessionID: created.Session.ID(),
	})

	stream := a.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: msg},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", ErrEmptyAgentResponse
	}
	return output, nil
}
