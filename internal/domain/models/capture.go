package models

// Match результат поиска по библиотеке модуля
type Match struct {
	Slot  int
	Score int
}
