package content

import (
	"github.com/fallencrown/gamecore/gamecore/inventory"
	"github.com/fallencrown/gamecore/gamecore/quest"
)

// Saga act ids. Each act is a separate quest; the final node of every act
// bridges into the next act so progress flows through quest boundaries.
const (
	FallenCrownActIID   int64 = 2001
	FallenCrownActIIID  int64 = 2002
	FallenCrownActIIIID int64 = 2003
	FallenCrownActIVID  int64 = 2004
	FallenCrownActVID   int64 = 2005

	FallenCrownStartNodeID = "fallen_crown_a1_q1"
)

// FallenCrownBlueprint is the "Сага про Згасле Королівство" quest line.
// Five acts, one seal shard per act until the finale, where the last node
// absorbs every choice without moving the player.
func FallenCrownBlueprint() []quest.Spec {
	actI := []quest.NodeSpec{
		{
			ID:      FallenCrownStartNodeID,
			Title:   "Пробудження серед попелу",
			Body:    "Ти приходиш до тями серед згарища зруйнованого села, не пам'ятаючи власного імені. Обшукай руїни або рушай далі, прийнявши втрати — кожен крок фіксується для подальших наслідків.",
			IsStart: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a1_q1_scavenge", Label: "Кинути жереб: обшукати руїни", RewardXP: 40, NextNodeID: "fallen_crown_a1_q2"},
				{ID: "fallen_crown_a1_q1_press_on", Label: "Просто підвестися і рушити далі, прийнявши втрати", RewardXP: 30, NextNodeID: "fallen_crown_a1_q2"},
			},
		},
		{
			ID:    "fallen_crown_a1_q2",
			Title: "Дорога через спалений ліс",
			Body:  "Обвуглені дерева тягнуться, наче сторожі. Серед уламків ти знаходиш пораненого вартового, який ледве тримається.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a1_q2_aid_guard", Label: "Спробувати врятувати вартового", RewardXP: 45, NextNodeID: "fallen_crown_a1_q7"},
				{ID: "fallen_crown_a1_q2_take_token", Label: "Прийняти жетон і продовжити шлях", RewardXP: 35, NextNodeID: "fallen_crown_a1_q7", RewardItemID: inventory.ItemGuardToken},
			},
		},
		{
			ID:    "fallen_crown_a1_q7",
			Title: "Перший уламок печаті",
			Body:  "У глибині шахти лежить уламок стародавньої печаті. Від нього відчувається резонанс, знайомий і тривожний. Візьми його — це постійний сюжетний предмет (1/5).",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a1_q7_claim", Label: "Підняти уламок і заховати його", RewardXP: 55, NextNodeID: "fallen_crown_a1_q8", RewardItemID: inventory.ItemSealShard},
			},
		},
		{
			ID:    "fallen_crown_a1_q8",
			Title: "Сірі Провідники",
			Body:  "Таємнича група мандрівників у сірих плащах стежить за тобою. Вони пропонують допомогу, але вимагають клятву мовчання.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a1_q8_accept", Label: "Прийняти клятву мовчання", RewardXP: 60, NextNodeID: "fallen_crown_a1_q10"},
				{ID: "fallen_crown_a1_q8_decline", Label: "Відмовитися і йти власним шляхом", RewardXP: 50, NextNodeID: "fallen_crown_a1_q10"},
			},
		},
		{
			ID:      "fallen_crown_a1_q10",
			Title:   "Бачення Згаслого Трону",
			Body:    "Уламок печаті показує тобі видіння: порожній трон у залі, вкритій попелом, і п'ять світлих ліній, що сходяться до нього. Акт I завершено.",
			IsFinal: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a1_q10_sworn", Label: "Заприсягтися знайти решту уламків", RewardXP: 70, NextNodeID: "fallen_crown_a2_q11", RewardItemID: inventory.ItemTravelerCloak},
			},
		},
	}

	actII := []quest.NodeSpec{
		{
			ID:      "fallen_crown_a2_q11",
			Title:   "Сліди Ордену",
			Body:    "У покинутому скрипторії залишилися знаки Ордену, який колись охороняв печать. Десь серед сувоїв — ім'я, яке ти міг колись носити.",
			IsStart: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a2_q11_search", Label: "Перебрати сувої до ранку", RewardXP: 75, NextNodeID: "fallen_crown_a2_q12"},
				{ID: "fallen_crown_a2_q11_move_on", Label: "Залишити минуле минулому і рушити далі", RewardXP: 60, NextNodeID: "fallen_crown_a2_q12"},
			},
		},
		{
			ID:    "fallen_crown_a2_q12",
			Title: "Вибір фракції",
			Body:  "Мисливці пропонують силу, алхіміки — знання. Обидві сторони хочуть уламок, який ти носиш під плащем.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a2_q12_hunters", Label: "Стати на бік Мисливців", RewardXP: 80, NextNodeID: "fallen_crown_a2_q16"},
				{ID: "fallen_crown_a2_q12_alchemists", Label: "Довіритися Алхімікам", RewardXP: 80, NextNodeID: "fallen_crown_a2_q16"},
			},
		},
		{
			ID:    "fallen_crown_a2_q16",
			Title: "Друга частина печаті",
			Body:  "У сховищі під ратушею, за дверима без замка, лежить другий уламок. Він холодний, як перший був гарячий (2/5).",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a2_q16_take", Label: "Забрати уламок і зникнути до темряви", RewardXP: 90, NextNodeID: "fallen_crown_a2_q19", RewardItemID: inventory.ItemSealShard},
			},
		},
		{
			ID:    "fallen_crown_a2_q19",
			Title: "Сумнів у пам'яті",
			Body:  "Два уламки поруч будять спогади, які не можуть бути твоїми. Або можуть — і це найстрашніше.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a2_q19_reflect", Label: "Дозволити спогадам прийти", RewardXP: 95, NextNodeID: "fallen_crown_a2_q20"},
				{ID: "fallen_crown_a2_q19_repress", Label: "Відштовхнути їх і зосередитися на дорозі", RewardXP: 85, NextNodeID: "fallen_crown_a2_q20"},
			},
		},
		{
			ID:      "fallen_crown_a2_q20",
			Title:   "Перехрестя істини",
			Body:    "Орден знав, що печать зламають. Питання лише в тому, хто тримав молот. Акт II завершено.",
			IsFinal: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a2_q20_destroy", Label: "Знищити архів Ордену і йти далі", RewardXP: 100, NextNodeID: "fallen_crown_a3_q21"},
				{ID: "fallen_crown_a2_q20_seek", Label: "Зберегти записи і шукати справжнього короля", RewardXP: 100, NextNodeID: "fallen_crown_a3_q21"},
			},
		},
	}

	actIII := []quest.NodeSpec{
		{
			ID:      "fallen_crown_a3_q21",
			Title:   "Союзники серед розбійників",
			Body:    "Війна фракцій докотилася до передгір'я. Загін розбійників контролює єдиний міст — і їм теж потрібні союзники.",
			IsStart: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a3_q21_bargain", Label: "Домовитися за частку здобичі", RewardXP: 105, NextNodeID: "fallen_crown_a3_q24"},
				{ID: "fallen_crown_a3_q21_intimidate", Label: "Показати уламки та силу, що за ними", RewardXP: 110, NextNodeID: "fallen_crown_a3_q24"},
			},
		},
		{
			ID:    "fallen_crown_a3_q24",
			Title: "Третя частина печаті",
			Body:  "Під завалами старої кузні розкопано третій уламок. Три з п'яти — і видіння трону стає чіткішим (3/5).",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a3_q24_unite", Label: "З'єднати уламки і витримати резонанс", RewardXP: 120, NextNodeID: "fallen_crown_a3_q27", RewardItemID: inventory.ItemSealShard},
			},
		},
		{
			ID:    "fallen_crown_a3_q27",
			Title: "Тяжкий вибір",
			Body:  "Облога вимагає жертв: або видати союзника, якого вважають зрадником, або втратити прихисток для біженців.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a3_q27_betray", Label: "Видати союзника заради міста", RewardXP: 125, NextNodeID: "fallen_crown_a3_q29"},
				{ID: "fallen_crown_a3_q27_save", Label: "Врятувати союзника і прийняти наслідки", RewardXP: 125, NextNodeID: "fallen_crown_a3_q29"},
			},
		},
		{
			ID:    "fallen_crown_a3_q29",
			Title: "Загибель наставника",
			Body:  "Старий Провідник, що вів тебе від самого попелища, закриває тебе собою. Його останні слова — ім'я міста на півночі.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a3_q29_vow", Label: "Поклястися завершити його шлях", RewardXP: 130, NextNodeID: "fallen_crown_a3_q30"},
			},
		},
		{
			ID:      "fallen_crown_a3_q30",
			Title:   "Справжній король",
			Body:    "Справжній спадкоємець живий — і столиця тримає його ближче, ніж будь-яку коштовність. Акт III завершено.",
			IsFinal: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a3_q30_seek", Label: "Вирушити до столиці", RewardXP: 140, NextNodeID: "fallen_crown_a4_q31"},
			},
		},
	}

	actIV := []quest.NodeSpec{
		{
			ID:      "fallen_crown_a4_q31",
			Title:   "Тінь у столиці",
			Body:    "Столиця живе, ніби королівство не згасло: базари, варта, шпигуни. Потрапити за мури можна торгом або контрабандою.",
			IsStart: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a4_q31_trade", Label: "Увійти відкрито під виглядом торгівця", RewardXP: 145, NextNodeID: "fallen_crown_a4_q33"},
				{ID: "fallen_crown_a4_q31_smuggle", Label: "Пройти контрабандними тунелями", RewardXP: 150, NextNodeID: "fallen_crown_a4_q33"},
			},
		},
		{
			ID:    "fallen_crown_a4_q33",
			Title: "Напівбожевільний король",
			Body:  "Той, кого звуть королем, розмовляє з порожнім троном. У його маренні — правда про ніч, коли печать зламали.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a4_q33_plead", Label: "Говорити з ним лагідно, як із хворим", RewardXP: 155, NextNodeID: "fallen_crown_a4_q34"},
				{ID: "fallen_crown_a4_q33_confront", Label: "Показати уламки і вимагати правди", RewardXP: 160, NextNodeID: "fallen_crown_a4_q34"},
			},
		},
		{
			ID:    "fallen_crown_a4_q34",
			Title: "Четвертий уламок",
			Body:  "Четверта частина печаті вмурована у підніжжя трону. Щоб узяти її, доведеться розколоти те, що лишилося від влади (4/5).",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a4_q34_claim", Label: "Вийняти уламок з-під трону", RewardXP: 165, NextNodeID: "fallen_crown_a4_q38", RewardItemID: inventory.ItemSealShard},
			},
		},
		{
			ID:    "fallen_crown_a4_q38",
			Title: "Дух наставника",
			Body:  "У катакомбах під палацом тебе наздоганяє знайомий голос. Наставник — чи те, що говорить його голосом — пропонує останню пораду.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a4_q38_listen", Label: "Вислухати до кінця", RewardXP: 170, NextNodeID: "fallen_crown_a4_q40"},
				{ID: "fallen_crown_a4_q38_refuse", Label: "Відмовитися слухати мертвих", RewardXP: 165, NextNodeID: "fallen_crown_a4_q40"},
			},
		},
		{
			ID:      "fallen_crown_a4_q40",
			Title:   "Світ у мороці",
			Body:    "Столиця позаду, попереду — храм бурі, де чекає останній уламок. Акт IV завершено.",
			IsFinal: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a4_q40_forward", Label: "Йти до храму бурі", RewardXP: 175, NextNodeID: "fallen_crown_a5_q41"},
			},
		},
	}

	actV := []quest.NodeSpec{
		{
			ID:      "fallen_crown_a5_q41",
			Title:   "Храм бурі",
			Body:    "Храм стоїть у центрі вічної грози. Усередині — останній уламок і відповідь на питання, хто ти.",
			IsStart: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a5_q41_enter", Label: "Увійти разом із супутниками", RewardXP: 180, NextNodeID: "fallen_crown_a5_q44"},
				{ID: "fallen_crown_a5_q41_solo", Label: "Залишити всіх за порогом і ввійти самому", RewardXP: 185, NextNodeID: "fallen_crown_a5_q44"},
			},
		},
		{
			ID:    "fallen_crown_a5_q44",
			Title: "Битва з тінню",
			Body:  "Тінь у залі має твоє обличчя і носить корону, якої більше немає. Її можна перемогти світлом або прийняти в себе.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a5_q44_light", Label: "Битися світлом печаті", RewardXP: 190, NextNodeID: "fallen_crown_a5_q46"},
				{ID: "fallen_crown_a5_q44_shadow", Label: "Прийняти тінь як частину себе", RewardXP: 190, NextNodeID: "fallen_crown_a5_q46"},
			},
		},
		{
			ID:    "fallen_crown_a5_q46",
			Title: "Розрив печаті",
			Body:  "П'ять уламків сходяться в одне. Печать можна зламати назавжди — або скувати наново власним ім'ям (5/5).",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a5_q46_break", Label: "Зламати печать і звільнити королівство", RewardXP: 195, NextNodeID: "fallen_crown_a5_q49", RewardItemID: inventory.ItemSealShard},
				{ID: "fallen_crown_a5_q46_bind", Label: "Скувати печать власним ім'ям", RewardXP: 195, NextNodeID: "fallen_crown_a5_q49", RewardItemID: inventory.ItemSealShard},
			},
		},
		{
			ID:    "fallen_crown_a5_q49",
			Title: "Пробудження світанку",
			Body:  "Світ прокидається після бурі. Оціни наслідки: які землі очищено, які ще потребують уваги, хто з союзників живий.",
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a5_q49_reflect", Label: "Озирнутися на шлях і прийняти його", RewardXP: 195, NextNodeID: "fallen_crown_a5_q50"},
			},
		},
		{
			ID:      "fallen_crown_a5_q50",
			Title:   "Титул героя",
			Body:    "Фінал Акта V і всієї саги. Визнач титул героя залежно від твоїх виборів: Рятівник, Узурпатор або Забутий. Цей крок фіксує кінцівку.",
			IsFinal: true,
			Choices: []quest.ChoiceSpec{
				{ID: "fallen_crown_a5_q50_redeemer", Label: "Прийняти титул Рятівника", RewardXP: 200, RewardItemID: inventory.ItemDuskMask},
				{ID: "fallen_crown_a5_q50_usurper", Label: "Проголосити себе Узурпатором", RewardXP: 200},
				{ID: "fallen_crown_a5_q50_forgotten", Label: "Зникнути, залишившись Забутим", RewardXP: 200},
			},
		},
	}

	return []quest.Spec{
		{
			ID:          FallenCrownActIID,
			Title:       "Сага про Згасле Королівство — Акт I: Попіл і Тиша",
			Description: "Початок подорожі героя без пам'яті та перший уламок печаті.",
			Nodes:       actI,
		},
		{
			ID:          FallenCrownActIIID,
			Title:       "Сага про Згасле Королівство — Акт II: Примари минулого",
			Description: "Герой відкриває правду про Орден та робить моральні вибори.",
			Nodes:       actII,
		},
		{
			ID:          FallenCrownActIIIID,
			Title:       "Сага про Згасле Королівство — Акт III: Кров і Прах",
			Description: "Війна фракцій, зради та пошук справжнього короля.",
			Nodes:       actIII,
		},
		{
			ID:          FallenCrownActIVID,
			Title:       "Сага про Згасле Королівство — Акт IV: Тінь на троні",
			Description: "Політичні інтриги у столиці та четвертий уламок печаті.",
			Nodes:       actIV,
		},
		{
			ID:          FallenCrownActVID,
			Title:       "Сага про Згасле Королівство — Акт V: Відродження",
			Description: "Фінальне зіткнення, останній уламок і вибір майбутнього світу.",
			Nodes:       actV,
		},
	}
}
