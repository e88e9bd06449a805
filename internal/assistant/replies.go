package assistant

import (
	"fmt"
	"strings"

	"github.com/abhisek/pathwise/internal/profile"
)

func greetingReply(in Input) Reply {
	msg := "Hello! I'm your learning assistant. I can help you plan study sessions, review your progress, and keep you motivated."
	if ld := in.Context.LearningData; ld != nil && ld.PathTitle != "" {
		msg = fmt.Sprintf("Hello! Ready to keep going with %s? You're on phase %d, day %d.", ld.PathTitle, ld.Phase, ld.Day)
	}
	return Reply{
		Response:    msg,
		Suggestions: []string{"Show my progress", "What are today's tasks?", "Help me plan my study", "I need motivation"},
	}
}

func wellbeingReply(Input) Reply {
	return Reply{
		Response:    "I'm doing great and ready to help you learn! How is your study going today?",
		Suggestions: []string{"It's going well", "I'm struggling a bit", "Show my progress"},
	}
}

func progressReply(in Input) Reply {
	a := in.Analytics
	if a == nil || a.TotalTasksCompleted == 0 {
		return Reply{
			Response:    "You haven't completed any tasks yet. Finish your first task today and I'll start tracking your progress.",
			Suggestions: []string{"What are today's tasks?", "Help me plan my study", "Show my roadmap"},
		}
	}
	var b strings.Builder
	b.WriteString("Here's your progress so far:\n")
	fmt.Fprintf(&b, "Tasks Completed: %d\n", a.TotalTasksCompleted)
	fmt.Fprintf(&b, "Time Spent: %.1f hours\n", a.TimeSpentTotal)
	fmt.Fprintf(&b, "Average Efficiency: %.0f%%\n", a.AverageEfficiency)
	fmt.Fprintf(&b, "Consistency: %.0f%%", a.ConsistencyRate*100)
	if len(a.StrongAreas) > 0 {
		fmt.Fprintf(&b, "\nStrong Areas: %s", strings.Join(a.StrongAreas, ", "))
	}
	return Reply{
		Response:    b.String(),
		Suggestions: []string{"How can I improve?", "Show my analytics", "What are today's tasks?"},
	}
}

func tasksReply(in Input) Reply {
	msg := "Your daily tasks mix learning, practice, and review. Start with the high-priority ones and track the time you actually spend."
	if ld := in.Context.LearningData; ld != nil {
		msg = fmt.Sprintf("For phase %d, day %d, start with the high-priority tasks first. Track the time you actually spend so your efficiency stays accurate.", ld.Phase, ld.Day)
	}
	return Reply{
		Response:    msg,
		Suggestions: []string{"Generate today's tasks", "How long should I study?", "Show my progress"},
	}
}

func planReply(in Input) Reply {
	msg := "A good study plan alternates focused sessions with short breaks. Aim for 45-minute blocks followed by a 10-minute rest."
	if p := in.Context.Profile; p != nil {
		switch p.PreferredStyle {
		case profile.StylePractical:
			msg = "Since you learn best by doing, spend most of each session building things. Read just enough to start, then practice."
		case profile.StyleTheoretical:
			msg = "Since you like understanding concepts first, open each session with reading and notes, then close it with a short exercise."
		case profile.StyleAccelerated:
			msg = "You prefer a fast pace, so use intensive sessions with clear goals and review often so nothing slips."
		}
	}
	return Reply{
		Response:    msg,
		Suggestions: []string{"What are today's tasks?", "Show my schedule", "I need motivation", "Show my roadmap"},
	}
}

func motivationReply(in Input) Reply {
	msg := "Every expert was once a beginner. Progress is rarely a straight line, so focus on showing up each day. Small steps add up."
	if a := in.Analytics; a != nil && a.TotalTasksCompleted > 0 {
		msg = fmt.Sprintf("You've already completed %d tasks. That's real progress! Take a short break if you need one, then tackle one small task to regain momentum.", a.TotalTasksCompleted)
	}
	return Reply{
		Response:    msg,
		Suggestions: []string{"Show my progress", "Give me an easy task", "Help me plan my study"},
	}
}

func analyticsReply(in Input) Reply {
	a := in.Analytics
	if a == nil || a.TotalTasksCompleted == 0 {
		return Reply{
			Response:    "There isn't enough data for analytics yet. Complete a few tasks and I'll show your efficiency and strongest areas.",
			Suggestions: []string{"What are today's tasks?", "Show my roadmap", "Help me plan my study"},
		}
	}
	var b strings.Builder
	b.WriteString("Learning analytics:\n")
	fmt.Fprintf(&b, "Tasks Completed: %d\n", a.TotalTasksCompleted)
	fmt.Fprintf(&b, "Average Efficiency: %.0f%%\n", a.AverageEfficiency)
	fmt.Fprintf(&b, "Average Task Time: %.1f hours", a.AverageTaskTime)
	if len(a.ImprovementAreas) > 0 {
		fmt.Fprintf(&b, "\nFocus Areas: %s", strings.Join(a.ImprovementAreas, ", "))
	}
	return Reply{
		Response:    b.String(),
		Suggestions: []string{"How can I improve?", "Show my progress", "What are today's tasks?"},
	}
}

func roadmapReply(in Input) Reply {
	msg := "Your roadmap splits the path into phases, each with its own topics and projects. Finish one phase's topics before moving on."
	if ld := in.Context.LearningData; ld != nil {
		title := ld.PathTitle
		if title == "" {
			title = "your path"
		}
		msg = fmt.Sprintf("You're in phase %d of %s. Keep working through this phase's topics and projects before moving on.", ld.Phase, title)
	}
	return Reply{
		Response:    msg,
		Suggestions: []string{"What are today's tasks?", "Show my progress", "Help me plan my study"},
	}
}

func helpReply(Input) Reply {
	return Reply{
		Response:    "I can help you with:\n- Today's tasks\n- Progress and analytics\n- Study planning\n- Your roadmap\n- Staying motivated\nJust ask!",
		Suggestions: []string{"What are today's tasks?", "Show my progress", "Show my roadmap", "I need motivation"},
	}
}

func fallbackReply(in Input) Reply {
	msg := fmt.Sprintf("I understand you're asking about \"%s\".", in.Text)
	if ld := in.Context.LearningData; ld != nil {
		msg += fmt.Sprintf(" Since you're on phase %d, day %d, focus on today's tasks and ask me about anything that's unclear.", ld.Phase, ld.Day)
	} else {
		msg += " Could you tell me more about what you'd like help with?"
	}
	return Reply{
		Response:    msg,
		Suggestions: []string{"Show my progress", "What are today's tasks?", "Help"},
	}
}
