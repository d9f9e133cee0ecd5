package shopify

// Storefront API queries for the catalog, kept here until the remote path is
// wired into the catalog service.

const QueryProducts = `
query GetProducts($first: Int!) {
  products(first: $first) {
    edges {
      node {
        id
        handle
        title
        description
        priceRange { minVariantPrice { amount currencyCode } }
        images(first: 5) { edges { node { url altText width height } } }
        variants(first: 20) {
          edges {
            node {
              id
              title
              price { amount }
              availableForSale
              selectedOptions { name value }
            }
          }
        }
      }
    }
  }
}
`

const QueryProductByHandle = `
query GetProduct($handle: String!) {
  product(handle: $handle) {
    id
    handle
    title
    description
    priceRange { minVariantPrice { amount currencyCode } }
    images(first: 10) { edges { node { url altText width height } } }
    variants(first: 50) {
      edges {
        node {
          id
          title
          price { amount }
          availableForSale
          selectedOptions { name value }
        }
      }
    }
  }
}
`

const QueryCollections = `
query GetCollections($first: Int!) {
  collections(first: $first) {
    edges {
      node {
        id
        handle
        title
        description
        image { url altText }
      }
    }
  }
}
`
