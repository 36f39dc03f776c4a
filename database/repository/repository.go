package repository

import (
	bookingRepo "auditorium/database/repository/booking"
	departmentRepo "auditorium/database/repository/department"
	userRepo "auditorium/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type BookingRepository = bookingRepo.BookingRepository

type UserRepository = userRepo.UserRepository

type DepartmentRepository = departmentRepo.DepartmentRepository

// Repositories holds every store the application uses.
type Repositories struct {
	Bookings    BookingRepository
	Users       UserRepository
	Departments DepartmentRepository
}

// NewMongoRepositories builds all repositories on one database handle.
func NewMongoRepositories(db *mongo.Database) (*Repositories, error) {
	bookings, err := bookingRepo.NewMongoBookingRepo(db)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Bookings:    bookings,
		Users:       userRepo.NewMongoUserRepo(db),
		Departments: departmentRepo.NewMongoDepartmentRepo(db),
	}, nil
}
