package content

import "github.com/fallencrown/gamecore/gamecore/quest"

// Onboarding quest identifiers. The builder resolves quests by id, so the
// onboarding line keeps a reserved low id.
const (
	OnboardingQuestID int64 = 1

	OnboardingNodeIntro     = "onboarding_intro"
	OnboardingNodeMechanics = "onboarding_mechanics"
	OnboardingNodeFinish    = "onboarding_finish"
)

// OnboardingBlueprint is the short tutorial line every new player starts
// on before the saga takes over.
func OnboardingBlueprint() quest.Spec {
	return quest.Spec{
		ID:          OnboardingQuestID,
		Title:       "Перші кроки фермера",
		Description: "Познайомтесь із фермою та її базовими механіками",
		Nodes: []quest.NodeSpec{
			{
				ID:      OnboardingNodeIntro,
				Title:   "Вітаємо на фермі",
				Body:    "Тут ти зможеш вирощувати фантазійні рослини, заробляти досвід та відкривати нові можливості.",
				IsStart: true,
				Choices: []quest.ChoiceSpec{
					{
						ID:         "onboarding_intro_next",
						Label:      "Розповісти більше",
						RewardXP:   15,
						NextNodeID: OnboardingNodeMechanics,
					},
				},
			},
			{
				ID:    OnboardingNodeMechanics,
				Title: "Як усе працює",
				Body:  "Посадка витрачає енергію, але врожай повертає золото та досвід. Не забувай про подарункове насіння – воно дає можливість почати без витрат!",
				Choices: []quest.ChoiceSpec{
					{
						ID:         "onboarding_mechanics_finish",
						Label:      "Я готовий",
						RewardXP:   40,
						NextNodeID: OnboardingNodeFinish,
					},
				},
			},
			{
				ID:      OnboardingNodeFinish,
				Title:   "Готово до пригод",
				Body:    "Ти готовий вирушити у свою першу фермерську подорож. Перевір квестову панель, щоб продовжити.",
				IsFinal: true,
			},
		},
	}
}
