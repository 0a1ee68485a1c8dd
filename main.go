package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/olekukonko/tablewriter"

	"github.com/jcmorales/aldeas_db/catalog"
	"github.com/jcmorales/aldeas_db/importer"
	"github.com/jcmorales/aldeas_db/migrations"
	"github.com/jcmorales/aldeas_db/reports"
)

func init() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	// Connect to database using environment variables
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"))

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Test connection
	err = db.Ping()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize database schema
	if err := migrations.InitSchema(db); err != nil {
		log.Printf("Warning: Error initializing schema: %v", err)
	}

	for {
		displayMenu()
		choice := readChoice()

		switch choice {
		case "1":
			listVillages(db)
		case "2":
			searchStudents(db)
		case "3":
			handleStudentImport(db)
		case "4":
			handleSeedCatalogs(db)
		case "5":
			handleStudentReport(db)
		case "6":
			handleStaffReport(db)
		case "7":
			displayRegistryStats(db)
		case "8":
			color.Green("Thank you for using the University Village Registry!")
			return
		default:
			color.Red("Invalid choice. Please try again.")
		}
	}
}

func displayMenu() {
	color.Cyan("\n=== University Village Registry ===")
	fmt.Println("1. List University Villages")
	fmt.Println("2. Search Students")
	fmt.Println("3. Import Students from Spreadsheet")
	fmt.Println("4. Seed Reference Catalogs")
	fmt.Println("5. Export Student Report (CSV)")
	fmt.Println("6. Export Staff Report (CSV)")
	fmt.Println("7. Registry Statistics")
	fmt.Println("8. Exit")
	fmt.Print("\nEnter your choice (1-8): ")
}

func readChoice() string {
	return readString()
}

func readString() string {
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}

func listVillages(db *sql.DB) {
	query := `
		SELECT a.codigo, a.nombre, pa.nombre, m.nombre, es.nombre
		FROM aldeas a
		JOIN parroquias pa ON a.parroquia_id = pa.id
		JOIN municipios m ON pa.municipio_id = m.id
		JOIN estados es ON m.estado_id = es.id
		ORDER BY es.nombre, m.nombre, a.nombre
	`

	rows, err := db.Query(query)
	if err != nil {
		log.Printf("Error listing villages: %v", err)
		return
	}
	defer rows.Close()

	color.Yellow("\nUniversity Villages")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Code", "Name", "Parish", "Municipality", "State"})

	for rows.Next() {
		var code, name, parish, municipality, state string

		err := rows.Scan(&code, &name, &parish, &municipality, &state)
		if err != nil {
			continue
		}

		table.Append([]string{code, name, parish, municipality, state})
	}

	table.Render()
}

func searchStudents(db *sql.DB) {
	fmt.Print("Enter document number or name to search: ")
	searchTerm := readString()

	query := `
		SELECT e.tipo_documento, e.numero_documento, e.nombre_apellido,
		       c.nombre, t.nombre, p.nombre, a.nombre
		FROM estudiantes e
		JOIN carreras c ON e.carrera_id = c.id
		JOIN tramos t ON e.tramo_id = t.id
		JOIN periodos_academicos p ON e.periodo_id = p.id
		JOIN aldeas a ON e.aldea_id = a.id
		WHERE e.numero_documento LIKE $1 OR e.nombre_apellido LIKE UPPER($1)
		LIMIT 10
	`

	rows, err := db.Query(query, "%"+searchTerm+"%")
	if err != nil {
		log.Printf("Error searching students: %v", err)
		return
	}
	defer rows.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Document", "Name", "Program", "Stage", "Period", "Village"})

	for rows.Next() {
		var docType, docNumber, name, program, stage, period, village string

		err := rows.Scan(&docType, &docNumber, &name, &program, &stage, &period, &village)
		if err != nil {
			log.Printf("Error scanning row: %v", err)
			continue
		}

		table.Append([]string{
			fmt.Sprintf("%s-%s", docType, docNumber),
			name, program, stage, period, village,
		})
	}

	table.Render()
}

func handleStudentImport(db *sql.DB) {
	fmt.Print("Enter the spreadsheet path (.xlsx or .csv): ")
	filename := readString()

	rows, err := importer.ReadFile(filename)
	if err != nil {
		color.Red("Cannot process file: %v", err)
		return
	}

	fmt.Printf("\nReady to import %d rows from %s\n", len(rows), filename)
	fmt.Print("Proceed with import? (y/n): ")
	if strings.ToLower(readString()) != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	store := catalog.NewPostgresStore(db)
	report := importer.New(store).Import(context.Background(), rows)

	if report.Critical != nil {
		color.Red("Import failed: %v", report.Critical)
		return
	}

	color.Green("Import finished. Registered: %d.", report.Imported)
	if len(report.Errors) > 0 {
		color.Yellow("Errors found in %d rows:", len(report.Errors))
		for _, msg := range report.Messages() {
			color.Yellow("  %s", msg)
		}
	}
}

func handleSeedCatalogs(db *sql.DB) {
	if err := catalog.Seed(context.Background(), db); err != nil {
		color.Red("Error seeding catalogs: %v", err)
		return
	}
	color.Green("Reference catalogs updated.")
}

func handleStudentReport(db *sql.DB) {
	filter := readReportFilter()

	outFile := "reporte_estudiantes.csv"
	file, err := os.Create(outFile)
	if err != nil {
		color.Red("Error creating report file: %v", err)
		return
	}
	defer file.Close()

	count, err := reports.ExportStudents(context.Background(), db, file, filter)
	if err != nil {
		color.Red("Error exporting students: %v", err)
		return
	}
	color.Green("Exported %d students to %s", count, outFile)
}

func handleStaffReport(db *sql.DB) {
	filter := readReportFilter()

	outFile := "reporte_personal.csv"
	file, err := os.Create(outFile)
	if err != nil {
		color.Red("Error creating report file: %v", err)
		return
	}
	defer file.Close()

	count, err := reports.ExportStaff(context.Background(), db, file, filter)
	if err != nil {
		color.Red("Error exporting staff: %v", err)
		return
	}
	color.Green("Exported %d staff records to %s", count, outFile)
}

func readReportFilter() reports.Filter {
	var filter reports.Filter

	fmt.Print("Filter by state id (blank for all): ")
	filter.StateID = readOptionalInt()

	fmt.Print("Filter by village id (blank for all): ")
	filter.VillageID = readOptionalInt()

	fmt.Print("Filter by gender (blank for all): ")
	filter.Gender = strings.ToUpper(readString())

	fmt.Print("Filter by document type V/E (blank for all): ")
	filter.DocumentType = strings.ToUpper(readString())

	return filter
}

func readOptionalInt() int {
	s := readString()
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		color.Red("Not a number, ignoring filter.")
		return 0
	}
	return n
}

func displayRegistryStats(db *sql.DB) {
	query := `
		SELECT c.tipo, c.nombre, COUNT(e.id) as students
		FROM carreras c
		LEFT JOIN estudiantes e ON e.carrera_id = c.id
		GROUP BY c.tipo, c.nombre
		ORDER BY students DESC
	`

	rows, err := db.Query(query)
	if err != nil {
		log.Printf("Error getting program stats: %v", err)
		return
	}
	defer rows.Close()

	color.Yellow("\nStudents by Program")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Program", "Students"})

	for rows.Next() {
		var kind, program string
		var count int

		err := rows.Scan(&kind, &program, &count)
		if err != nil {
			continue
		}

		table.Append([]string{kind, program, strconv.Itoa(count)})
	}

	table.Render()

	query = `
		SELECT a.codigo, a.nombre, COUNT(e.id) as students
		FROM aldeas a
		LEFT JOIN estudiantes e ON e.aldea_id = a.id
		GROUP BY a.codigo, a.nombre
		ORDER BY students DESC
		LIMIT 10
	`

	rows, err = db.Query(query)
	if err != nil {
		log.Printf("Error getting village stats: %v", err)
		return
	}
	defer rows.Close()

	color.Yellow("\nTop 10 Villages by Enrollment")
	table = tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Code", "Village", "Students"})

	for rows.Next() {
		var code, village string
		var count int

		err := rows.Scan(&code, &village, &count)
		if err != nil {
			continue
		}

		table.Append([]string{code, village, strconv.Itoa(count)})
	}

	table.Render()
}
