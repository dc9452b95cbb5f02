// Package agent implements the interactive AI assistant behind `vbk
// assist`. The assistant answers questions about the ledger by calling
// read-only query functions; it never mutates state.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const systemPrompt = `You are a ledger analyst for a token release schedule book.
Answer questions about schedules, matured and releasable amounts, balances
and their history, using the provided functions to read the ledger. All
amounts are exact integers in base units. Be concise.`

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w       io.Writer
	r       *bufio.Reader
	library Library
	chat    *genai.Chat
}

// New creates a new Agent answering from the given function library. It
// takes an io.Writer for the agent's output (e.g., os.Stdout) and an
// io.Reader for user input (e.g., os.Stdin).
func New(w io.Writer, r io.Reader, library Library) *Agent {
	return &Agent{
		w:       w,
		r:       bufio.NewReader(r),
		library: library,
	}
}

// Start creates the underlying chat session with the ledger tools attached.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Tools: []*genai.Tool{
			{FunctionDeclarations: a.library.Declarations()},
		},
	}
	chat, err := client.Chats.Create(ctx, defaultModel, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to vbk ledger assist. Type 'bye' to exit.")

	// REPL loop
	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		text, err := a.ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, text)
	}
}

// ask sends parts to the chat, resolving function calls against the library
// until the model produces a text answer.
func (a *Agent) ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	resp, err := a.chat.Send(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the model")
	}
	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		fresp := a.library.Call(ctx, part0.FunctionCall)
		// Ask again with the response the model asked for, until we have a
		// real answer.
		return a.ask(ctx, &genai.Part{FunctionResponse: fresp})
	}
	return part0.Text, nil
}
