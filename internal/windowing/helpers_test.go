package windowing_test

import "github.com/petasbytes/companion/internal/session"

func U(text string) session.Turn { return session.UserTurn(text) }
func A(text string) session.Turn { return session.AssistantTurn(text) }
