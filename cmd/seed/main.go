// Seed loads the default insurance fact-find question bank and the
// initial settings row into an empty database.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"factfind/config"
	"factfind/internal/database"
	"factfind/internal/model"
	"factfind/internal/repository"
)

func main() {
	cfg := config.Load()
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.Connect(ctx, cfg.DatabaseURL)
	defer db.Close()
	database.Migrate(cfg.DatabaseURL, cfg.MigrationsDir)

	questionRepo := repository.NewQuestionRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)

	existing, err := questionRepo.List(ctx)
	if err != nil {
		log.Fatalf("list questions: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("question bank already seeded (%d questions), skipping", len(existing))
	} else {
		for i := range defaultQuestions {
			defaultQuestions[i].Order = i + 1
			if err := questionRepo.Create(ctx, &defaultQuestions[i]); err != nil {
				log.Fatalf("insert question %q: %v", defaultQuestions[i].Text, err)
			}
		}
		log.Printf("inserted %d questions", len(defaultQuestions))
	}

	if err := settingsRepo.Ensure(ctx, defaultSettings()); err != nil {
		log.Fatalf("seed settings: %v", err)
	}
	log.Println("settings ensured")
}

func defaultSettings() *model.Settings {
	return &model.Settings{
		AIPrompt: "You are an insurance assistant helping collect fact-find information. " +
			"Be polite, clear, and concise. Ask one question at a time and wait for the " +
			"user's response before continuing. Use the user's name when appropriate. " +
			"If the user seems confused, offer clarification. For yes/no questions, " +
			"present them as clear choices.",
		AIModel:       "gpt-4o",
		AITemperature: "0.7",
	}
}

func depends(questionID int, value string) *model.DependsOn {
	return &model.DependsOn{QuestionID: questionID, Value: value}
}

var yesNo = []string{"Yes", "No"}

var defaultQuestions = []model.Question{
	{Text: "Are you UK domiciled and a UK tax resident?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "personal"},
	{Text: "What is your marital status?", Type: model.QuestionTypeChoice, Options: []string{"Single", "Married", "Divorced"}, Category: "personal"},
	{Text: "What is your relationship to the other applicant (if applicable)?", Type: model.QuestionTypeText, Placeholder: "e.g., Spouse, Partner, Sibling", Category: "personal"},
	{Text: "Do you have any dependents? (Would you like to add any dependants to your policy?)", Type: model.QuestionTypeChoice, Options: yesNo, Category: "personal"},
	{Text: "If yes, how many dependents do you have? (under 18)", Type: model.QuestionTypeNumber, DependsOn: depends(4, "Yes"), Placeholder: "Enter number", Category: "personal"},
	{Text: "How old are your dependents?", Type: model.QuestionTypeText, DependsOn: depends(4, "Yes"), Placeholder: "e.g., 5, 8, 12", Category: "personal"},
	{Text: "What is your occupation?", Type: model.QuestionTypeText, Placeholder: "Enter your occupation", Category: "employment"},
	{Text: "What is your employment status?", Type: model.QuestionTypeChoice, Options: []string{"Employed", "Self-Employed", "Unemployed"}, Category: "employment"},
	{Text: "If unemployed, please explain why.", Type: model.QuestionTypeText, DependsOn: depends(8, "Unemployed"), Placeholder: "Provide details", Category: "employment"},
	{Text: "Do you smoke?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "health"},
	{Text: "If no, have you smoked in the last 12 months?", Type: model.QuestionTypeChoice, Options: yesNo, DependsOn: depends(10, "No"), Category: "health"},
	{Text: "Are you classed as vulnerable?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "health"},
	{Text: "If yes, please explain your vulnerability.", Type: model.QuestionTypeText, DependsOn: depends(12, "Yes"), Placeholder: "Provide details", Category: "health"},
	{Text: "Are you currently taking any medication?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "health"},
	{Text: "If yes, please list the medication you are taking.", Type: model.QuestionTypeText, DependsOn: depends(14, "Yes"), Placeholder: "List medications", Category: "health"},
	{Text: "Do you do any exercise?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "health"},
	{Text: "What is your height?", Type: model.QuestionTypeText, Placeholder: "e.g., 175cm or 5'10\"", Category: "health"},
	{Text: "What is your weight?", Type: model.QuestionTypeText, Placeholder: "e.g., 70kg or 154lbs", Category: "health"},
	{Text: "Are any of the following of interest to you? (Please select all that apply)", Type: model.QuestionTypeCheckbox, Options: []string{
		"Life Insurance",
		"Critical Illness Cover",
		"Income Protection",
		"Mortgage Protection",
		"Pensions",
		"Investments",
		"Other",
	}, Category: "interests"},
	{Text: "Is there anything else you would like to add?", Type: model.QuestionTypeText, Placeholder: "Additional information", Category: "interests"},
	{Text: "Gross Annual Income:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Enter amount", Category: "finances"},
	{Text: "Do you have any other income? (e.g., Child Support, Maintenance)", Type: model.QuestionTypeChoice, Options: yesNo, Category: "finances"},
	{Text: "If yes, please specify amount and source:", Type: model.QuestionTypeText, DependsOn: depends(22, "Yes"), Prefix: "£", Placeholder: "Amount and source", Category: "finances"},
	{Text: "Mortgage Costs:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "finances"},
	{Text: "Rental Costs:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "finances"},
	{Text: "Household Bills:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "finances"},
	{Text: "Gym/Sports Clubs:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "finances"},
	{Text: "Insurance Costs:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "finances"},
	{Text: "Overdraft, Loans, Credit Card Costs:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "finances"},
	{Text: "Food/Clothes:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "finances"},
	{Text: "Entertainment:", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "finances"},
	{Text: "Other expenses (please specify):", Type: model.QuestionTypeText, Prefix: "£", Placeholder: "Amount and details", Category: "finances"},
	{Text: "If you were off work due to sickness/accident, what would you receive?", Type: model.QuestionTypeText, Placeholder: "Provide details", Category: "protection"},
	{Text: "Is this SSP?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "protection"},
	{Text: "Do you have Death in Service benefit at work?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "protection"},
	{Text: "Are you paying into a pension (Company/Personal)?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "protection"},
	{Text: "What is your National Insurance number?", Type: model.QuestionTypeText, Placeholder: "e.g., AB123456C", Category: "protection"},
	{Text: "Do you have any other Life Insurances in place?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "protection"},
	{Text: "If yes, please provide the company name:", Type: model.QuestionTypeText, DependsOn: depends(38, "Yes"), Placeholder: "Company name", Category: "protection"},
	{Text: "Sum Assured:", Type: model.QuestionTypeNumber, DependsOn: depends(38, "Yes"), Prefix: "£", Placeholder: "Enter amount", Category: "protection"},
	{Text: "Do you have Buildings/Contents Insurance?", Type: model.QuestionTypeChoice, Options: yesNo, Category: "protection"},
	{Text: "What is your current rent amount (if applicable)?", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Monthly amount", Category: "property"},
	{Text: "What is the remaining term on your mortgage?", Type: model.QuestionTypeText, Placeholder: "e.g., 15 years", Category: "property"},
	{Text: "What is the outstanding balance on your mortgage?", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Enter amount", Category: "property"},
	{Text: "How much do you have in savings or investments?", Type: model.QuestionTypeNumber, Prefix: "£", Placeholder: "Enter amount", Category: "property"},
}
