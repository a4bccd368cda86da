package repository

import "github.com/BruksfildServices01/solar-scheduler/internal/models"

// SeedDemo carrega uma equipe, dois técnicos e uma usina de exemplo.
func SeedDemo(r *AppointmentMemoryRepository) {
	team := r.AddTeam(models.Team{Name: "Equipe A", Level: 1})

	r.AddTechnician(models.User{
		TeamID: &team.ID, FirstName: "Ana", LastName: "Lima",
		Email: "ana.lima@example.com", Role: "technician", Active: true,
	})
	r.AddTechnician(models.User{
		TeamID: &team.ID, FirstName: "Bruno", LastName: "Souza",
		Email: "bruno.souza@example.com", Role: "technician", Active: true,
	})

	client := r.AddClient(models.Client{Name: "Solaris Energia", Active: true})
	plant := r.AddPlant(models.Plant{ClientID: client.ID, Name: "UFV Norte", CapacityKW: 5000})
	inverter := r.AddEquipment(models.Equipment{PlantID: plant.ID, Name: "Inversor 01", Kind: "inverter", SerialNumber: "INV-001"})
	r.AddEquipment(models.Equipment{PlantID: plant.ID, ParentID: &inverter.ID, Name: "String Box 01", Kind: "string_box", SerialNumber: "SB-001"})
}
