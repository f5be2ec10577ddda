// Package console drives the interactive text UI: the main menu, the role
// dashboards, and the booking flow. It holds the only session state in the
// system (the logged-in user) and recovers every input error locally by
// re-prompting.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"urbanwheels/model"
	bookingrepo "urbanwheels/repository/booking"
	authsvc "urbanwheels/service/auth"
	billingsvc "urbanwheels/service/billing"
	catalogsvc "urbanwheels/service/catalog"
	reservationsvc "urbanwheels/service/reservation"
)

type Controller struct {
	Auth        authsvc.Service
	Catalog     catalogsvc.Service
	Reservation reservationsvc.Service
	Billing     billingsvc.Service
	Log         *slog.Logger

	in      *bufio.Scanner
	out     io.Writer
	current *model.User
}

func New(in io.Reader, out io.Writer, a authsvc.Service, c catalogsvc.Service, r reservationsvc.Service, b billingsvc.Service, log *slog.Logger) *Controller {
	return &Controller{
		Auth:        a,
		Catalog:     c,
		Reservation: r,
		Billing:     b,
		Log:         log,
		in:          bufio.NewScanner(in),
		out:         out,
	}
}

// Run blocks until the user exits or input ends.
func (ct *Controller) Run(ctx context.Context) {
	for {
		ct.printf("\n==============================\n")
		ct.printf("   Urban Wheels\n")
		ct.printf("==============================\n")
		ct.printf("1. Register\n2. Login\n3. Exit\n")

		choice, ok := ct.prompt("\nEnter choice: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			ct.register(ctx)
		case "2":
			if ct.login(ctx) {
				if ct.current.Role == model.RoleOwner {
					ct.ownerMenu(ctx)
				} else {
					ct.customerMenu(ctx)
				}
			}
		case "3":
			ct.printf("Thank you for using Urban Wheels. Goodbye!\n")
			return
		default:
			ct.printf("Invalid input. Try again.\n")
		}
	}
}

// --- authentication ---

func (ct *Controller) register(ctx context.Context) {
	ct.printf("\n=== REGISTRATION ===\n")
	username, ok := ct.prompt("Enter username: ")
	if !ok {
		return
	}
	password, ok := ct.prompt("Enter password: ")
	if !ok {
		return
	}

	ct.printf("\nSelect Role:\n1. Car Owner\n2. Customer\n")
	var role string
	for role == "" {
		choice, ok := ct.prompt("Enter choice (1 or 2): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			role = string(model.RoleOwner)
		case "2":
			role = string(model.RoleCustomer)
		default:
			ct.printf("Invalid choice. Please enter 1 or 2.\n")
		}
	}

	_, _, err := ct.Auth.Register(ctx, model.RegisterReq{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrDuplicateUsername:
			ct.printf("Username already taken!\n")
		case authsvc.ErrBadInput:
			ct.printf("Username and password must not be empty.\n")
		default:
			ct.Log.Error("register", "err", err)
			ct.printf("Registration failed, try again.\n")
		}
		return
	}
	ct.printf("\nRegistration Successful! You can now login as a %s.\n", role)
}

func (ct *Controller) login(ctx context.Context) bool {
	ct.printf("\n=== LOGIN ===\n")
	username, ok := ct.prompt("Enter username: ")
	if !ok {
		return false
	}
	password, ok := ct.prompt("Enter password: ")
	if !ok {
		return false
	}

	u, _, err := ct.Auth.Login(ctx, model.LoginReq{Username: username, Password: password})
	if err != nil {
		if authsvc.Code(err) != authsvc.ErrAuthFailed {
			ct.Log.Error("login", "err", err)
		}
		ct.printf("\nInvalid username or password.\n")
		return false
	}
	ct.current = u
	ct.printf("\nWelcome back, %s!\n", u.Username)
	return true
}

func (ct *Controller) logout() {
	ct.printf("Goodbye, %s!\n", ct.current.Username)
	ct.current = nil
}

// --- owner dashboard ---

func (ct *Controller) ownerMenu(ctx context.Context) {
	for {
		ct.printf("\n--- OWNER DASHBOARD (%s) ---\n", ct.current.Username)
		ct.printf("1. Add Car for Rental\n2. Check Bookings\n3. Logout\n")

		choice, ok := ct.prompt("\nEnter choice: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			ct.addCar(ctx)
		case "2":
			ct.ownerBookings(ctx)
		case "3":
			ct.logout()
			return
		default:
			ct.printf("Invalid choice.\n")
		}
	}
}

func (ct *Controller) addCar(ctx context.Context) {
	ct.printf("\n--- ADD NEW CAR ---\n")
	carModel, ok := ct.prompt("Car Model (e.g., Toyota Camry): ")
	if !ok {
		return
	}
	category, ok := ct.prompt("Car Type (e.g., SUV, Sedan): ")
	if !ok {
		return
	}
	rate, ok := ct.promptInt("Rent per Day: ")
	if !ok {
		return
	}
	city, ok := ct.prompt("City: ")
	if !ok {
		return
	}

	_, err := ct.Catalog.AddCar(ctx, ct.current.Username, model.AddCarReq{
		Model:     carModel,
		Category:  category,
		DailyRate: rate,
		City:      city,
	})
	if err != nil {
		switch catalogsvc.Code(err) {
		case catalogsvc.ErrInvalidRate:
			ct.printf("Rent per day must not be negative.\n")
		case catalogsvc.ErrBadInput:
			ct.printf("All fields are required.\n")
		default:
			ct.Log.Error("add car", "err", err)
			ct.printf("Could not add the car, try again.\n")
		}
		return
	}
	ct.printf("\nCar '%s' added successfully!\n", carModel)
}

func (ct *Controller) ownerBookings(ctx context.Context) {
	ct.printf("\n--- MY BOOKINGS ---\n")
	rows, err := ct.Reservation.OwnerBookings(ctx, ct.current.Username)
	if err != nil {
		ct.Log.Error("owner bookings", "err", err)
		ct.printf("Could not load bookings.\n")
		return
	}
	if len(rows) == 0 {
		ct.printf("No bookings found yet.\n")
		return
	}
	for _, b := range rows {
		ct.printf("Car: %-15s | Customer: %-10s | Days: %d | Total: $%d\n",
			b.CarModel, b.Counterparty, b.DurationDays, b.TotalCost)
	}
}

// --- customer dashboard ---

func (ct *Controller) customerMenu(ctx context.Context) {
	for {
		ct.printf("\n--- CUSTOMER DASHBOARD (%s) ---\n", ct.current.Username)
		ct.printf("1. View All Cars\n2. Search Cars by City\n3. View Cars by Price (Low to High)\n4. Book a Car\n5. My Bookings\n6. Discount Calculator\n7. Logout\n")

		choice, ok := ct.prompt("\nEnter choice: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			cars, err := ct.Catalog.ListAvailable(ctx)
			ct.showCars(cars, err, "AVAILABLE CARS")
		case "2":
			ct.searchByCity(ctx)
		case "3":
			cars, err := ct.Catalog.SortByRate(ctx)
			ct.showCars(cars, err, "CARS BY PRICE (LOW -> HIGH)")
		case "4":
			ct.bookCar(ctx)
		case "5":
			ct.myBookings(ctx)
		case "6":
			ct.discountCalculator()
		case "7":
			ct.logout()
			return
		default:
			ct.printf("Invalid choice.\n")
		}
	}
}

func (ct *Controller) searchByCity(ctx context.Context) {
	city, ok := ct.prompt("Enter city to search: ")
	if !ok {
		return
	}
	cars, err := ct.Catalog.FilterByCity(ctx, city)
	if err == nil && len(cars) == 0 {
		ct.printf("No cars found in '%s'.\n", city)
		return
	}
	ct.showCars(cars, err, "CARS IN "+strings.ToUpper(city))
}

func (ct *Controller) showCars(cars []model.Car, err error, title string) {
	if err != nil {
		ct.Log.Error("list cars", "err", err)
		ct.printf("Could not load cars.\n")
		return
	}
	ct.printf("\n--- %s ---\n", title)
	if len(cars) == 0 {
		ct.printf("No cars available at the moment.\n")
		return
	}
	ct.printf("%-4s %-20s %-10s %-15s %-10s\n", "No.", "Model", "Type", "City", "Rent/Day")
	ct.printf("%s\n", strings.Repeat("-", 65))
	for i, car := range cars {
		ct.printf("%-4d %-20s %-10s %-15s $%-10d\n", i+1, car.Model, car.Category, car.City, car.DailyRate)
	}
}

func (ct *Controller) bookCar(ctx context.Context) {
	// The snapshot the user picks from; selection is by position here but
	// the commit below goes through the car's stable id.
	snapshot, err := ct.Catalog.ListAvailable(ctx)
	if err != nil {
		ct.Log.Error("list cars", "err", err)
		ct.printf("Could not load cars.\n")
		return
	}
	if len(snapshot) == 0 {
		ct.printf("\nNo cars available to book.\n")
		return
	}
	ct.showCars(snapshot, nil, "SELECT A CAR TO BOOK")

	ct.printf("\n(Enter 0 to cancel)\n")
	choice, ok := ct.promptInt("Enter the car No. you want to book: ")
	if !ok {
		return
	}
	if choice == 0 {
		return
	}
	if choice < 1 || choice > int64(len(snapshot)) {
		ct.printf("Invalid car number.\n")
		return
	}
	selected := snapshot[choice-1]

	ct.printf("\nYou selected: %s ($%d/day)\n", selected.Model, selected.DailyRate)
	days, ok := ct.promptInt("How many days do you want to rent? ")
	if !ok {
		return
	}

	quote, err := ct.Reservation.Quote(ctx, selected.ID, days)
	if err != nil {
		switch reservationsvc.Code(err) {
		case reservationsvc.ErrInvalidDuration:
			ct.printf("Rental duration must be at least 1 day.\n")
		case reservationsvc.ErrInvalidSelection:
			ct.printf("That car is no longer available.\n")
		default:
			ct.Log.Error("quote", "err", err)
			ct.printf("Could not prepare the booking.\n")
		}
		return
	}

	ct.printf("\nTotal Bill: $%d\n", quote.TotalCost)
	confirm, ok := ct.prompt("Confirm booking? (yes/no): ")
	if !ok {
		return
	}
	confirm = strings.ToLower(confirm)
	if confirm != "yes" && confirm != "y" {
		// Declining leaves everything untouched.
		ct.printf("Booking Cancelled.\n")
		return
	}

	b, err := ct.Reservation.Reserve(ctx, ct.current.Username, selected.ID, days)
	if err != nil {
		if reservationsvc.Code(err) == reservationsvc.ErrInvalidSelection {
			ct.printf("That car was just booked by someone else.\n")
		} else {
			ct.Log.Error("reserve", "err", err)
			ct.printf("Booking failed, try again.\n")
		}
		return
	}
	ct.printf("Booking Successful! Enjoy your ride.\n")
	ct.printf("Receipt: %s for %d day(s), total $%d\n", b.CarModel, b.DurationDays, b.TotalCost)
}

func (ct *Controller) myBookings(ctx context.Context) {
	ct.printf("\n--- MY BOOKINGS ---\n")
	rows, err := ct.Reservation.MyBookings(ctx, ct.current.Username)
	if err != nil {
		ct.Log.Error("my bookings", "err", err)
		ct.printf("Could not load bookings.\n")
		return
	}
	ct.printBookings(rows)
}

func (ct *Controller) printBookings(rows []bookingrepo.HistoryRow) {
	if len(rows) == 0 {
		ct.printf("No bookings found yet.\n")
		return
	}
	for _, b := range rows {
		ct.printf("Car: %-15s | Owner: %-10s | Days: %d | Total: $%d\n",
			b.CarModel, b.Counterparty, b.DurationDays, b.TotalCost)
	}
}

func (ct *Controller) discountCalculator() {
	ct.printf("\n--- DISCOUNT CALCULATOR ---\n")
	var gender string
	for gender == "" {
		g, ok := ct.prompt("Enter Gender (M/F): ")
		if !ok {
			return
		}
		switch strings.ToLower(g) {
		case "m":
			gender = string(billingsvc.Male)
		case "f":
			gender = string(billingsvc.Female)
		default:
			ct.printf("Invalid input! Please enter 'M' or 'F'.\n")
		}
	}
	age, ok := ct.promptInt("Enter Age: ")
	if !ok {
		return
	}
	subtotal, ok := ct.promptInt("Enter Bill Amount: ")
	if !ok {
		return
	}

	q, err := ct.Billing.Quote(gender, age, subtotal)
	if err != nil {
		ct.printf("Age must be positive.\n")
		return
	}
	ct.printf("\nTotal Amount      : $%d\n", q.Subtotal)
	ct.printf("Discount Applied  : %d%%\n", q.Percent)
	ct.printf("Discount Amount   : $%d\n", q.DiscountAmount)
	ct.printf("Net Payable Amount: $%d\n", q.NetPayable)
}

// --- input helpers ---

func (ct *Controller) printf(format string, args ...any) {
	fmt.Fprintf(ct.out, format, args...)
}

// prompt reads one trimmed line; ok is false when input has ended.
func (ct *Controller) prompt(label string) (string, bool) {
	ct.printf("%s", label)
	if !ct.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(ct.in.Text()), true
}

// promptInt re-prompts until it gets a non-negative integer.
func (ct *Controller) promptInt(label string) (int64, bool) {
	for {
		raw, ok := ct.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ct.printf("Invalid input. Please enter a number.\n")
			continue
		}
		if n < 0 {
			ct.printf("Please enter a positive number.\n")
			continue
		}
		return n, true
	}
}
