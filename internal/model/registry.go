package model

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Account{},
		&Profile{},
		&Session{},
		&Course{},
		&CourseBookmark{},
		&Segment{},
		&Attachment{},
		&Exercise{},
		&ChartSnapshot{},
		&ChartScreenshot{},
		&Upload{},
		&FileDeletion{},
	}
}
