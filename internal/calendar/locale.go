package calendar

import (
	"fmt"
	"time"
)

// MonthNames are the Spanish month names, January first
var MonthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// DayNames are the Spanish weekday abbreviations, Monday first
var DayNames = [7]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

const (
	LabelWeekend = "Fin de Semana"
	LabelWorkday = "Día laborable"
)

// MonthName returns the Spanish name of month
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return month.String()
	}
	return MonthNames[month-1]
}

// WeekdayName returns the Spanish abbreviation of weekday
func WeekdayName(weekday time.Weekday) string {
	if weekday == time.Sunday {
		return DayNames[6]
	}
	return DayNames[weekday-1]
}

// Title renders a month heading such as "Diciembre 2025"
func Title(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}
