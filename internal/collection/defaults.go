package collection

import "github.com/verte-zerg/phrasedrill/internal/model"

// DefaultName names the collection seeded on first run.
const DefaultName = "Everyday phrases"

var defaultPhrases = []model.Phrase{
	{Source: "Hello", Target: "Привет"},
	{Source: "Good morning", Target: "Доброе утро"},
	{Source: "How are you?", Target: "Как дела?"},
	{Source: "I'm fine, thank you", Target: "Хорошо, спасибо"},
	{Source: "What is your name?", Target: "Как тебя зовут?"},
	{Source: "My name is Anna", Target: "Меня зовут Анна"},
	{Source: "Nice to meet you", Target: "Приятно познакомиться"},
	{Source: "Where is the station?", Target: "Где вокзал?"},
	{Source: "How much does it cost?", Target: "Сколько это стоит?"},
	{Source: "I don't understand", Target: "Я не понимаю"},
	{Source: "Please speak slowly", Target: "Говорите медленно, пожалуйста"},
	{Source: "See you tomorrow", Target: "До завтра"},
	{Source: "Goodbye", Target: "До свидания"},
}

// Default returns a fresh copy of the built-in collection.
func Default() model.Collection {
	return model.Collection{Name: DefaultName, Phrases: model.ClonePhrases(defaultPhrases)}
}
