package service

import "mergington.dev/activities/internal/model"

// SeedActivities returns a fresh copy of the catalog an empty store is initialized with.
func SeedActivities() []*model.Activity {
	return []*model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Enrollments:     roster("michael@mergington.edu", "daniel@mergington.edu"),
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Enrollments:     roster("emma@mergington.edu", "sophia@mergington.edu"),
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Enrollments:     roster("john@mergington.edu", "olivia@mergington.edu"),
		},
	}
}

func roster(emails ...string) []*model.Enrollment {
	enrollments := make([]*model.Enrollment, 0, len(emails))
	for _, email := range emails {
		enrollments = append(enrollments, &model.Enrollment{Email: email})
	}
	return enrollments
}
