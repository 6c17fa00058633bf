package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/lendbook"
	"github.com/etnz/lendbook/docs"
	"github.com/etnz/lendbook/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// BookFile is the book the experts read. The CLI points it at the
// application's book file before starting a session.
var BookFile = "book.jsonl"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user keeps a personal lending book: money lent to friends and family, repayments,
			interest, and a trust score per borrower. He is here primarily to understand who owes
			him what, whether a borrower can be trusted with a new loan, and what to do about
			overdue debts.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request. Check the book first before assuming anything about a borrower.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor creates the expert for everything outside the book: market
// interest rates, what a fair rate between friends looks like, how peer
// lending is usually handled. It grounds its answers with Google Search.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a lending advisor,
		well aware of current interest rates, consumer credit conditions, and
		the etiquette of lending money between friends and family.
		Ask the Advisor whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in personal lending. You can search and find anything related to
			interest rates, central bank benchmarks, consumer credit, and debt collection.
			You leverage Google Search to ground your assertions in a solid truth.
			You can get the latest rates too, and you know how to relate them to the user's loans.
				`}}},
		},
	}
}

// NewBookkeeper creates the expert in charge of reading the user's book.
func NewBookkeeper() *Expert {
	lib := []Function{Summary, Score, Statement}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's lending book.
		He can compute balances, accrued interest, trust scores, and detailed statements
		for every borrower.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the bookkeeper of the user's personal lending book.
				You know how to use the Tools to extract relevant information about the user's loans.
				You are part of a team of experts, yours is everything recorded in the book. They might
				ask you questions about borrowers, pardon their approximative language and figure out
				what they meant.

				Use the available tools to get information about the book:
				  - the overall summary, one line per borrower
				  - a borrower's trust score with its factors and history
				  - a borrower's detailed statement, loan by loan
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// failure builds an error function response.
func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// success builds an output function response.
func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

var dateParam = &genai.Schema{
	Type:        genai.TypeString,
	Description: `The date on which to evaluate the book, in YYYY-MM-DD format. Today is the default.`,
}

var borrowerParam = &genai.Schema{
	Type:        genai.TypeString,
	Description: `The borrower's identifier, as recorded in the book.`,
}

// Summary lists every borrower with outstanding totals and trust scores.
var Summary = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Summary",
		Description: `Summary lists every borrower in the lending book with the number of open,
		completed and overdue loans, the outstanding balance, and the trust score.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date": dateParam,
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table, one row per borrower.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		on, err := parseDate(args)
		if err != nil {
			return failure(id, "Summary", err)
		}
		book, err := DecodeBook()
		if err != nil {
			return failure(id, "Summary", err)
		}
		return success(id, "Summary", renderer.RenderSummary(renderer.NewSummary(book, on)))
	},
}

// Score computes a borrower's trust score.
var Score = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Score",
		Description: `Score rates a borrower's repayment reliability on a 1..100 scale,
		with ranked factors explaining the score and the full lending history.

		` + must(docs.GetTopic("scoring")),
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"borrower": borrowerParam,
				"date":     dateParam,
			},
			Required: []string{"borrower"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted score report with factors and history.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		borrower, err := parseBorrower(args)
		if err != nil {
			return failure(id, "Score", err)
		}
		on, err := parseDate(args)
		if err != nil {
			return failure(id, "Score", err)
		}
		book, err := DecodeBook()
		if err != nil {
			return failure(id, "Score", err)
		}
		card := renderer.NewScoreCard(borrower, book.Score(borrower, on), on)
		return success(id, "Score", renderer.RenderScoreCard(card))
	},
}

// Statement details a borrower's loans, repayments, and balances.
var Statement = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Statement",
		Description: `Statement details every loan of a borrower: principal, accrued interest,
		total payable, paid amount, remaining balance, and the repayment history.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"borrower": borrowerParam,
				"date":     dateParam,
			},
			Required: []string{"borrower"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted statement, one section per loan.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		borrower, err := parseBorrower(args)
		if err != nil {
			return failure(id, "Statement", err)
		}
		on, err := parseDate(args)
		if err != nil {
			return failure(id, "Statement", err)
		}
		book, err := DecodeBook()
		if err != nil {
			return failure(id, "Statement", err)
		}
		st := renderer.NewStatement(borrower, book.BorrowerLoans(borrower, on), on)
		return success(id, "Statement", renderer.RenderStatement(st))
	},
}

// DecodeBook decodes the book from the application's book file. If the
// file does not exist, it returns a new empty book.
func DecodeBook() (*lendbook.Book, error) {
	f, err := os.Open(BookFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lendbook.NewBook(), nil
		}
		return nil, fmt.Errorf("could not open book file %q: %w", BookFile, err)
	}
	defer f.Close()

	book, err := lendbook.DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", BookFile, err)
	}
	return book, nil
}

func parseDate(args map[string]any) (lendbook.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return lendbook.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return lendbook.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	on, err := lendbook.ParseDate(sdate)
	if err != nil {
		return lendbook.Today(), fmt.Errorf("argument 'date' must be a valid date, got %q: %w", sdate, err)
	}
	return on, nil
}

func parseBorrower(args map[string]any) (string, error) {
	iborrower, ok := args["borrower"]
	if !ok {
		return "", errors.New("argument 'borrower' is required")
	}
	borrower, ok := iborrower.(string)
	if !ok {
		return "", fmt.Errorf("argument 'borrower' is not a string as expected but %T", iborrower)
	}
	return borrower, nil
}
