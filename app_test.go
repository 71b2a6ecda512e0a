package tui

import "testing"

func newTestApp(t *testing.T) *App {
	t.Helper()
	v := NewVirtualDriver(80, 24)
	app := NewApp(v, DefaultThemeContext(), NewScreenStack(), NewKeyBindingRegistry())
	return app
}

func TestFunctionKeyOpensMenu(t *testing.T) {
	// scenario 3: function-key opens menu.
	app := newTestApp(t)
	f3 := NamedCombo(F3)
	menu := NewMenuSystem([]MenuDefinition{
		{Label: "Files", FKey: &f3, Items: []MenuItem{NewScreenItem("Browse", "file-browser")}},
	}, app.stack)
	app.SetMenuSystem(menu)

	v := app.driver.(*VirtualDriver)
	if err := v.QueueInput("F3"); err != nil {
		t.Fatalf("QueueInput(F3): %v", err)
	}
	key, ok := app.decoder.Next(v)
	if !ok {
		t.Fatalf("expected a decoded key for F3")
	}

	consumed := app.menu.HandleInput(key)
	if !consumed {
		t.Fatalf("expected the menu to consume the F3 key")
	}
	if !menu.IsOpen() {
		t.Fatalf("expected the menu to be open after F3")
	}
}

func TestEscapeDoesNotOpenMenuAndIsNotConsumedWhenNoMatch(t *testing.T) {
	app := newTestApp(t)
	f3 := NamedCombo(F3)
	menu := NewMenuSystem([]MenuDefinition{
		{Label: "Files", FKey: &f3, Items: []MenuItem{NewScreenItem("Browse", "file-browser")}},
	}, app.stack)
	app.SetMenuSystem(menu)

	if app.menu.HandleInput(namedEvent(Escape)) {
		t.Fatalf("closed menu should not consume a key with no matching fkey")
	}
}

func TestInvalidationAfterNavigation(t *testing.T) {
	// scenario 2: invalidation after navigation (depth change detection).
	app := newTestApp(t)
	root := newRecordingScreen("root", 'A')
	app.stack.Push(root)

	lastDepth := app.stack.Depth()
	detail := newRecordingScreen("detail", 'B')
	app.stack.Push(detail)

	app.detectScreenChange(&lastDepth)

	v := app.driver.(*VirtualDriver)
	v.ClearOutput()
	app.fb.BeginFrame()
	app.renderScreen()
	if err := app.fb.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if len(v.Output()) == 0 {
		t.Fatalf("expected a full redraw after a depth-changing push")
	}
}

func TestNavigateToScreenNoOpWhenAlreadyCurrent(t *testing.T) {
	stack := NewScreenStack()
	root := newRecordingScreen("root", 'R')
	stack.Push(root)

	calls := 0
	NavigateToScreen(stack, "root", func() Screen {
		calls++
		return newRecordingScreen("root", 'R')
	})

	if calls != 0 {
		t.Fatalf("factory should not be called when the target is already current")
	}
	if stack.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", stack.Depth())
	}
}

func TestNavigateToScreenPopsUntilDeeperMatch(t *testing.T) {
	stack := NewScreenStack()
	root := newRecordingScreen("root", 'R')
	mid := newRecordingScreen("mid", 'M')
	top := newRecordingScreen("top", 'T')
	stack.Push(root)
	stack.Push(mid)
	stack.Push(top)

	NavigateToScreen(stack, "mid", func() Screen { return nil })

	if stack.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2 after popping to mid", stack.Depth())
	}
	if stack.Current().Title() != "mid" {
		t.Fatalf("Current().Title() = %q, want mid", stack.Current().Title())
	}
}

func TestNavigateToScreenPushesFreshWhenAbsent(t *testing.T) {
	stack := NewScreenStack()
	root := newRecordingScreen("root", 'R')
	stack.Push(root)

	NavigateToScreen(stack, "new-screen", func() Screen {
		return newRecordingScreen("new-screen", 'N')
	})

	if stack.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", stack.Depth())
	}
	if stack.Current().Title() != "new-screen" {
		t.Fatalf("Current().Title() = %q, want new-screen", stack.Current().Title())
	}
}
