package catalog

// DemoListings are the sample listings a fresh installation can be seeded
// with.
func DemoListings() []Draft {
	return []Draft{
		{
			Title:       "Apartamento Luxuoso Centro",
			Category:    CategoryApartment,
			Price:       2500,
			Location:    "Centro, Alfenas",
			Bedrooms:    3,
			Bathrooms:   2,
			Area:        120,
			Image:       "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800",
			Description: "Apartamento moderno no coração da cidade, com acabamento de alto padrão.",
			Active:      true,
		},
		{
			Title:       "Casa com Quintal Amplo",
			Category:    CategoryHouse,
			Price:       3200,
			Location:    "Jardim Europa, Alfenas",
			Bedrooms:    4,
			Bathrooms:   3,
			Area:        250,
			Image:       "https://images.unsplash.com/photo-1568605114967-8130f3a36994?w=800",
			Description: "Casa espaçosa com quintal, ideal para famílias.",
			Active:      true,
		},
		{
			Title:       "Cobertura Vista Panorâmica",
			Category:    CategoryPenthouse,
			Price:       4500,
			Location:    "Alto da Colina, Alfenas",
			Bedrooms:    3,
			Bathrooms:   3,
			Area:        180,
			Image:       "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800",
			Description: "Cobertura com terraço e vista para toda a cidade.",
			Active:      true,
		},
		{
			Title:       "Kitnet para Estudantes",
			Category:    CategoryStudio,
			Price:       800,
			Location:    "Próximo UNIFAL, Alfenas",
			Bedrooms:    1,
			Bathrooms:   1,
			Area:        35,
			Image:       "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800",
			Description: "Kitnet mobiliada a poucos minutos da universidade.",
			Active:      true,
		},
		{
			Title:       "Sala Comercial",
			Category:    CategoryCommercial,
			Price:       5000,
			Location:    "Centro Comercial, Alfenas",
			Bedrooms:    0,
			Bathrooms:   2,
			Area:        200,
			Image:       "https://images.unsplash.com/photo-1497366216548-37526070297c?w=800",
			Description: "Espaço comercial em ponto estratégico.",
			Active:      true,
		},
		{
			Title:       "Apartamento Aconchegante",
			Category:    CategoryApartment,
			Price:       1800,
			Location:    "Residencial Morada do Sol, Alfenas",
			Bedrooms:    2,
			Bathrooms:   1,
			Area:        70,
			Image:       "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800",
			Description: "Apartamento bem localizado, próximo a comércios.",
			Active:      true,
		},
	}
}
