package quizgen

import (
	"fmt"
	"strings"
)

// systemDirective defines the four agent roles sharing one session. The
// Critic is the groundedness enforcement point; a single-shot prompt cannot
// reliably audit its own output.
const systemDirective = `You are an advanced, production-grade multi-agent RAG system designed for high-stakes educational assessment creation.

Your architecture consists of four specialized AI agents working in a strictly defined workflow:

1. **Reader Agent (The Analyst)**:
   - Capability: Deep semantic analysis of documents.
   - Goal: Extract specific facts, definitions, and relationships relevant to the user's requested topic and difficulty.
   - Constraints: Must ONLY use information present in the uploaded document. Zero outside-knowledge hallucination.

2. **Teacher Agent (The Creator)**:
   - Capability: Pedagogical question design (Bloom's Taxonomy).
   - Goal: Create drafted multiple-choice questions based exclusively on the Reader's extracted facts.
   - Constraints: Create plausible distractors. Ensure questions match the difficulty level (1-10).

3. **Critic Agent (The Reviewer)**:
   - Capability: Fact-checking and logic verification.
   - Goal: Ruthlessly critique the Teacher's questions.
   - Actions:
     - Verify the correct answer is explicitly supported by the text.
     - Check that distractors are clearly incorrect but educational.
     - Reject any question that relies on external knowledge.
     - Refine phrasing for clarity.

4. **Formatter Agent (The Engineer)**:
   - Capability: Structured data output.
   - Goal: Convert the finalized, critiqued questions into the strict JSON schema required.

You will execute this pipeline step-by-step as prompted by the orchestrator.`

// Seed turn texts grounding the session on the uploaded document before
// any agent is activated.
const (
	seedUserText  = "System Initialization: Source Document Uploaded. Awaiting agent activation."
	seedModelText = "System Ready. Document ingested. Agents are on standby."
)

func readerPrompt(p Params) string {
	topic := p.Topic
	if topic == "" {
		topic = "General Overview"
	}

	var b strings.Builder
	b.WriteString("[ACTIVATE: Reader Agent]\n\n")
	b.WriteString("Analyze the uploaded document.\n")
	fmt.Fprintf(&b, "Target Topic: %q\n", topic)
	fmt.Fprintf(&b, "Difficulty Level: %d/10\n\n", p.Difficulty)
	b.WriteString("Task:\n")
	b.WriteString("1. Scan the document for key concepts matching the topic.\n")
	fmt.Fprintf(&b, "2. Extract %d distinct facts or logical segments that are suitable for forming questions.\n", p.Count+3)
	b.WriteString("3. Quote the specific text segment for each fact to ensure grounding.\n\n")
	b.WriteString("Output your analysis as a structured list of facts.")
	return b.String()
}

func teacherPrompt(p Params) string {
	var b strings.Builder
	b.WriteString("[ACTIVATE: Teacher Agent]\n\n")
	b.WriteString("Based strictly on the Reader Agent's analysis above:\n")
	fmt.Fprintf(&b, "Draft %d multiple-choice questions.\n\n", p.Count)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Difficulty: %d/10.\n", p.Difficulty)
	b.WriteString("- Each question must have 4 options.\n")
	b.WriteString("- Mark the correct answer.\n")
	b.WriteString("- Provide a brief explanation referencing the source text.\n\n")
	b.WriteString("Do not format as JSON yet. Focus on content quality and pedagogical value.")
	return b.String()
}

func criticPrompt(p Params) string {
	var b strings.Builder
	b.WriteString("[ACTIVATE: Critic Agent]\n\n")
	b.WriteString("Review the drafted questions.\n\n")
	b.WriteString("Checklist:\n")
	b.WriteString("1. Is the answer 100% supported by the extracted facts?\n")
	b.WriteString("2. Are the distractors non-ambiguous?\n")
	b.WriteString("3. Is the difficulty level appropriate?\n\n")
	b.WriteString("If a question fails, REWRITE it completely using the source text.\n")
	fmt.Fprintf(&b, "Confirm the final set of %d valid questions.", p.Count)
	return b.String()
}

func formatterPrompt(p Params) string {
	var b strings.Builder
	b.WriteString("[ACTIVATE: Formatter Agent]\n\n")
	b.WriteString("Output the final verified questions in the required JSON schema.\n")
	fmt.Fprintf(&b, "Ensure exactly %d questions.", p.Count)
	return b.String()
}
