package models

import (
	"fmt"
	"strings"
)

type Course string

const (
	CourseStarter Course = "STARTER"
	CourseMain    Course = "MAIN"
	CourseDessert Course = "DESSERT"
)

// Courses lists every course in menu order.
var Courses = []Course{CourseStarter, CourseMain, CourseDessert}

// labels accepted from the form picker in addition to the canonical names
var courseAliases = map[string]Course{
	"starter":   CourseStarter,
	"main":      CourseMain,
	"main meal": CourseMain,
	"dessert":   CourseDessert,
}

func (c Course) Valid() bool {
	switch c {
	case CourseStarter, CourseMain, CourseDessert:
		return true
	}
	return false
}

func (c Course) String() string {
	return string(c)
}

// ParseCourse maps user input onto a Course, ignoring case and
// surrounding whitespace.
func ParseCourse(s string) (Course, error) {
	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if c, ok := courseAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown course %q", s)
}
