package catalog

// Destinations returns the selectable trip destinations: the provincial
// capitals plus the other cities the company regularly sends crews to.
// The list is fixed; free-text destinations are not accepted by the form.
func Destinations() []string {
	return []string{
		// CABA
		"Buenos Aires, CABA",

		// Buenos Aires Province
		"La Plata, Buenos Aires",
		"Mar del Plata, Buenos Aires",
		"Bahía Blanca, Buenos Aires",
		"Tandil, Buenos Aires",
		"Junín, Buenos Aires",

		// Catamarca
		"San Fernando del Valle de Catamarca, Catamarca",

		// Chaco
		"Resistencia, Chaco",

		// Chubut
		"Rawson, Chubut",
		"Comodoro Rivadavia, Chubut",
		"Puerto Madryn, Chubut",
		"Trelew, Chubut",

		// Córdoba
		"Córdoba, Córdoba",
		"Río Cuarto, Córdoba",
		"Villa María, Córdoba",

		// Corrientes
		"Corrientes, Corrientes",

		// Entre Ríos
		"Paraná, Entre Ríos",
		"Concordia, Entre Ríos",
		"Gualeguaychú, Entre Ríos",

		// Formosa
		"Formosa, Formosa",

		// Jujuy
		"San Salvador de Jujuy, Jujuy",

		// La Pampa
		"Santa Rosa, La Pampa",

		// La Rioja
		"La Rioja, La Rioja",

		// Mendoza
		"Mendoza, Mendoza",
		"San Rafael, Mendoza",

		// Misiones
		"Posadas, Misiones",
		"Puerto Iguazú, Misiones",

		// Neuquén
		"Neuquén, Neuquén",
		"San Martín de los Andes, Neuquén",

		// Río Negro
		"Viedma, Río Negro",
		"San Carlos de Bariloche, Río Negro",

		// Salta
		"Salta, Salta",

		// San Juan
		"San Juan, San Juan",

		// San Luis
		"San Luis, San Luis",

		// Santa Cruz
		"Río Gallegos, Santa Cruz",
		"El Calafate, Santa Cruz",

		// Santa Fe
		"Santa Fe, Santa Fe",
		"Rosario, Santa Fe",
		"Rafaela, Santa Fe",

		// Santiago del Estero
		"Santiago del Estero, Santiago del Estero",

		// Tierra del Fuego
		"Ushuaia, Tierra del Fuego",
		"Río Grande, Tierra del Fuego",

		// Tucumán
		"San Miguel de Tucumán, Tucumán",
	}
}
